// internal/app/system/attachments/attachments.go
package attachments

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dalemusser/casehub/internal/app/system/limits"
	"github.com/dalemusser/casehub/internal/domain/models"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

var (
	// ErrTooMany is returned when a case already holds the maximum number of
	// attachments.
	ErrTooMany = errors.New("too many attachments")
	// ErrTooLarge is returned when a single file exceeds the size limit.
	ErrTooLarge = errors.New("attachment is too large")
	// ErrEmpty is returned for zero-byte files.
	ErrEmpty = errors.New("attachment is empty")
)

// Limits bounds what the case editor accepts.
type Limits struct {
	MaxFiles int
	MaxBytes int64
}

// DefaultLimits returns 5 files of at most 25 MB each.
func DefaultLimits() Limits {
	return NewLimits(limits.DefaultMaxFiles, limits.DefaultMaxSizeMB)
}

// NewLimits builds Limits from a file count and a per-file size in MB.
func NewLimits(maxFiles, maxSizeMB int) Limits {
	return Limits{MaxFiles: maxFiles, MaxBytes: int64(maxSizeMB) << 20}
}

// Check reports whether one more file of size bytes may be added to a case
// that already has existing attachments. The returned error wraps
// ErrTooMany or ErrTooLarge with a message fit for the user.
func (l Limits) Check(existing int, size int64) error {
	if err := l.CheckCount(existing); err != nil {
		return err
	}
	if size > l.MaxBytes {
		return fmt.Errorf("%w: %s exceeds the %s limit", ErrTooLarge, FormatSize(size), FormatSize(l.MaxBytes))
	}
	if size <= 0 {
		return ErrEmpty
	}
	return nil
}

// CheckCount reports whether a case holding existing attachments has room
// for one more. The error wraps ErrTooMany.
func (l Limits) CheckCount(existing int) error {
	if existing >= l.MaxFiles {
		return fmt.Errorf("%w: at most %d files per case", ErrTooMany, l.MaxFiles)
	}
	return nil
}

// FormatSize renders a byte count for display ("2.4 MiB").
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// Ref returns the content reference for data: the hex BLAKE2b-256 digest.
func Ref(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Blob is stored attachment content. File names live on the attachment
// records, since identical uploads under different names share a blob.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Blobs is the in-memory content store, keyed by Ref. Identical uploads
// share one entry.
//
// Blobs is not safe for concurrent use; the hub serializes access.
type Blobs struct {
	m map[string]Blob
}

func NewBlobs() *Blobs {
	return &Blobs{m: make(map[string]Blob)}
}

// Put stores data and returns the attachment record that points at it.
func (b *Blobs) Put(name, mimeType string, data []byte) models.Attachment {
	ref := Ref(data)
	if _, ok := b.m[ref]; !ok {
		b.m[ref] = Blob{MIMEType: mimeType, Data: append([]byte(nil), data...)}
	}
	return models.Attachment{
		ID:       uuid.NewString(),
		Name:     name,
		Size:     int64(len(data)),
		MIMEType: mimeType,
		Ref:      ref,
	}
}

// Get returns the content stored under ref.
func (b *Blobs) Get(ref string) (Blob, bool) {
	blob, ok := b.m[ref]
	return blob, ok
}

// Len returns the number of distinct blobs.
func (b *Blobs) Len() int { return len(b.m) }

// Prune drops every blob not referenced by keep.
func (b *Blobs) Prune(keep map[string]bool) int {
	n := 0
	for ref := range b.m {
		if !keep[ref] {
			delete(b.m, ref)
			n++
		}
	}
	return n
}
