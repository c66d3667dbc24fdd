// internal/app/system/viewdata/cards.go
package viewdata

import (
	"strings"

	catalogstore "github.com/dalemusser/casehub/internal/app/store/catalog"
	"github.com/dalemusser/casehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/casehub/internal/domain/models"
)

// ExcerptLength is the number of characters of body shown on a card.
const ExcerptLength = 180

// CaseCard is the summary of a case shown in the feed, the list, queues and
// profiles.
type CaseCard struct {
	ID             string
	Title          string
	Excerpt        string
	CategoryName   string
	CategoryColor  string
	Placement      string
	AuthorName     string
	AuthorAvatar   string
	AuthorInitials string
	LastModified   string
	Keywords       []string

	Views    int
	Stars    int
	Likes    int
	Comments int
	Liked    bool
	Saved    bool
	Favorite bool

	Status          string
	StatusLabel     string
	RejectionReason string
}

// NewCaseCard builds the card for c, resolving placement names from cat.
func NewCaseCard(c models.Case, cat *catalogstore.Store) CaseCard {
	return CaseCard{
		ID:              c.ID,
		Title:           c.Title,
		Excerpt:         htmlsanitize.Excerpt(stripMarkdown(c.Body), ExcerptLength),
		CategoryName:    c.Category.Name,
		CategoryColor:   c.Category.Color,
		Placement:       PlacementLabel(cat, c.DivisionID, c.DepartmentID, c.SectionID),
		AuthorName:      c.Author.Name,
		AuthorAvatar:    c.Author.Avatar,
		AuthorInitials:  c.Author.Initials(),
		LastModified:    c.LastModified,
		Keywords:        c.Keywords,
		Views:           c.Views,
		Stars:           c.Stars,
		Likes:           c.Likes.Count,
		Comments:        len(c.Comments),
		Liked:           c.Likes.On,
		Saved:           c.Saved,
		Favorite:        c.Favorite,
		Status:          string(c.Status),
		StatusLabel:     c.Status.Label(),
		RejectionReason: c.RejectionReason,
	}
}

// CaseCards maps NewCaseCard over cs.
func CaseCards(cs []models.Case, cat *catalogstore.Store) []CaseCard {
	out := make([]CaseCard, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCaseCard(c, cat))
	}
	return out
}

// PlacementLabel joins the names of a division, department and section,
// skipping ids that do not resolve.
func PlacementLabel(cat *catalogstore.Store, divisionID, departmentID, sectionID string) string {
	var parts []string
	if d, ok := cat.Division(divisionID); ok {
		parts = append(parts, d.Name)
	}
	if d, ok := cat.Department(departmentID); ok {
		parts = append(parts, d.Name)
	}
	if s, ok := cat.Section(sectionID); ok {
		parts = append(parts, s.Name)
	}
	return strings.Join(parts, " › ")
}

// stripMarkdown drops heading markers, emphasis and code fences so excerpts
// read as prose.
func stripMarkdown(s string) string {
	var b strings.Builder
	inFence := false
	for _, line := range strings.Split(s, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		t = strings.TrimLeft(t, "#>-* ")
		t = strings.NewReplacer("**", "", "__", "", "`", "").Replace(t)
		if t == "" {
			continue
		}
		b.WriteString(t)
		b.WriteByte(' ')
	}
	return b.String()
}
