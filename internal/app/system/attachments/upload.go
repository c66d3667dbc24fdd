// internal/app/system/attachments/upload.go
package attachments

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// State is the lifecycle of one file upload.
type State string

const (
	StatePending   State = "pending"
	StateUploading State = "uploading"
	StateComplete  State = "complete"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// ErrNotPending is returned when Run is called on an upload that already
// started.
var ErrNotPending = errors.New("upload already started")

const chunkSize = 32 << 10

// Upload copies one file's content while tracking progress. Run honors
// context cancellation between chunks; Progress and State may be read from
// other goroutines while Run is in flight.
type Upload struct {
	Name     string
	MIMEType string
	Size     int64 // expected size; 0 when unknown
	limit    int64

	mu      sync.Mutex
	state   State
	written int64
	err     error
}

// NewUpload prepares an upload that refuses more than limit bytes.
func NewUpload(name, mimeType string, size int64, l Limits) *Upload {
	return &Upload{
		Name:     name,
		MIMEType: mimeType,
		Size:     size,
		limit:    l.MaxBytes,
		state:    StatePending,
	}
}

// State returns the current lifecycle state.
func (u *Upload) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Err returns the failure cause once the upload is cancelled or failed.
func (u *Upload) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// Progress returns the completed percentage, 0 to 100.
func (u *Upload) Progress() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == StateComplete {
		return 100
	}
	if u.Size <= 0 {
		return 0
	}
	p := int(u.written * 100 / u.Size)
	if p > 99 {
		p = 99
	}
	return p
}

func (u *Upload) finish(st State, err error) {
	u.mu.Lock()
	u.state = st
	u.err = err
	u.mu.Unlock()
}

// Run reads r to the end and returns the content. A cancelled ctx leaves the
// upload in StateCancelled; a read error or an oversize body leaves it in
// StateFailed.
func (u *Upload) Run(ctx context.Context, r io.Reader) ([]byte, error) {
	u.mu.Lock()
	if u.state != StatePending {
		u.mu.Unlock()
		return nil, ErrNotPending
	}
	u.state = StateUploading
	u.mu.Unlock()

	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			u.finish(StateCancelled, err)
			return nil, err
		}
		n, rerr := r.Read(chunk)
		if n > 0 {
			if int64(buf.Len()+n) > u.limit {
				err := fmt.Errorf("%w: %s exceeds the %s limit", ErrTooLarge, u.Name, FormatSize(u.limit))
				u.finish(StateFailed, err)
				return nil, err
			}
			buf.Write(chunk[:n])
			u.mu.Lock()
			u.written += int64(n)
			u.mu.Unlock()
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			u.finish(StateFailed, rerr)
			return nil, rerr
		}
	}
	if buf.Len() == 0 {
		u.finish(StateFailed, ErrEmpty)
		return nil, ErrEmpty
	}
	u.finish(StateComplete, nil)
	return buf.Bytes(), nil
}
