// internal/app/features/cases/upload.go
package cases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/dalemusser/casehub/internal/app/system/attachments"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/limits"
	"github.com/dalemusser/casehub/internal/app/system/metrics"
	"github.com/dalemusser/casehub/internal/app/system/timeouts"
	"github.com/dalemusser/casehub/internal/domain/models"
	"go.uber.org/zap"
)

// errFormTooLarge is returned when the text fields of the editor exceed
// limits.MaxCaseFormSize.
var errFormTooLarge = errors.New("case form is too large")

// pendingFile is an upload that passed the size limit and was read fully.
type pendingFile struct {
	Name     string
	MIMEType string
	Data     []byte
}

// uploadBatch holds the file parts read while parsing the editor form and
// the messages for files that were refused on the way.
type uploadBatch struct {
	files   []pendingFile
	refused []string
}

// take applies the per-case file limit given existing retained
// attachments. Files over the limit are refused with a message and not
// added; the rest are returned.
func (b *uploadBatch) take(l attachments.Limits, existing int) ([]pendingFile, []string) {
	if b == nil {
		return nil, nil
	}
	refused := append([]string(nil), b.refused...)
	var out []pendingFile
	for _, f := range b.files {
		if err := l.Check(existing+len(out), int64(len(f.Data))); err != nil {
			refused = append(refused, fmt.Sprintf("%q was not added: %v", f.Name, err))
			continue
		}
		out = append(out, f)
	}
	return out, refused
}

// parseEditorForm reads the editor form into r.Form. A urlencoded form is
// parsed as usual. A multipart form is streamed part by part: each file is
// read under its own size limit, so an oversize or surplus file is refused
// while the text fields still arrive. When the body runs past the overall
// budget, reading stops and whatever was parsed is kept.
func (h *Handler) parseEditorForm(w http.ResponseWriter, r *http.Request) (*uploadBatch, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, limits.MaxCaseFormSize)
		return &uploadBatch{}, r.ParseForm()
	}

	r.Body = http.MaxBytesReader(w, r.Body, limits.MultipartBudget(h.Limits.MaxFiles, h.Limits.MaxBytes))
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Upload())
	defer cancel()

	form := url.Values{}
	batch := &uploadBatch{}
	var fieldBytes int64
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			if len(form) == 0 {
				return nil, err
			}
			h.Log.Warn("editor form truncated", zap.Error(err))
			batch.refused = append(batch.refused, "The rest of the upload was not read: the request was too large.")
			break
		}

		name := part.FormName()
		if part.FileName() == "" {
			if name == "" || name == "files" {
				continue
			}
			b, err := io.ReadAll(io.LimitReader(part, limits.MaxCaseFormSize-fieldBytes+1))
			if err != nil {
				return nil, err
			}
			fieldBytes += int64(len(b))
			if fieldBytes > limits.MaxCaseFormSize {
				return nil, errFormTooLarge
			}
			form.Add(name, string(b))
			continue
		}
		if name != "files" {
			continue
		}
		h.readPart(ctx, part, batch)
	}

	r.Form = form
	r.PostForm = form
	return batch, nil
}

// readPart copies one file part into batch or records why it was refused.
// Unread bytes of a refused part are skipped by the next NextPart call.
func (h *Handler) readPart(ctx context.Context, part *multipart.Part, batch *uploadBatch) {
	fileName := part.FileName()
	if err := h.Limits.CheckCount(len(batch.files)); err != nil {
		batch.refused = append(batch.refused, fmt.Sprintf("%q was not added: %v", fileName, err))
		return
	}
	mimeType := mimeOf(part.Header)
	data, err := attachments.NewUpload(fileName, mimeType, 0, h.Limits).Run(ctx, part)
	if err != nil {
		h.Log.Warn("upload refused", zap.String("file", fileName), zap.Error(err))
		batch.refused = append(batch.refused, fmt.Sprintf("%q was not added: %v", fileName, err))
		return
	}
	batch.files = append(batch.files, pendingFile{Name: fileName, MIMEType: mimeType, Data: data})
}

func mimeOf(h textproto.MIMEHeader) string {
	if ct := h.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// storeUploads puts the files into the blob store. Call it inside a hub
// command.
func storeUploads(st *hub.State, files []pendingFile) []models.Attachment {
	out := make([]models.Attachment, 0, len(files))
	for _, f := range files {
		out = append(out, st.Blobs.Put(f.Name, f.MIMEType, f.Data))
		metrics.AttachmentBytes.Add(float64(len(f.Data)))
	}
	return out
}
