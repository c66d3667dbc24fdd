package attachments_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dalemusser/casehub/internal/app/system/attachments"
)

func TestLimits_Check(t *testing.T) {
	l := attachments.DefaultLimits()

	if err := l.Check(0, 1024); err != nil {
		t.Errorf("small file refused: %v", err)
	}
	if err := l.Check(5, 10); !errors.Is(err, attachments.ErrTooMany) {
		t.Errorf("expected ErrTooMany, got %v", err)
	}
	if err := l.Check(0, 25<<20+1); !errors.Is(err, attachments.ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	if err := l.Check(4, 25<<20); err != nil {
		t.Errorf("file at the limit should pass: %v", err)
	}
	if err := l.Check(0, 0); !errors.Is(err, attachments.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestLimits_CheckCount(t *testing.T) {
	l := attachments.Limits{MaxFiles: 2, MaxBytes: 64}

	if err := l.CheckCount(1); err != nil {
		t.Errorf("second file refused: %v", err)
	}
	if err := l.CheckCount(2); !errors.Is(err, attachments.ErrTooMany) {
		t.Errorf("expected ErrTooMany, got %v", err)
	}
}

func TestBlobs_PutGetDedupes(t *testing.T) {
	b := attachments.NewBlobs()

	a1 := b.Put("log.txt", "text/plain", []byte("hello"))
	a2 := b.Put("copy.txt", "text/plain", []byte("hello"))

	if a1.Ref != a2.Ref {
		t.Error("identical content should share a ref")
	}
	if a1.ID == a2.ID {
		t.Error("attachment ids should differ")
	}
	if b.Len() != 1 {
		t.Errorf("expected 1 blob, got %d", b.Len())
	}
	blob, ok := b.Get(a1.Ref)
	if !ok || string(blob.Data) != "hello" {
		t.Errorf("Get: ok=%v data=%q", ok, blob.Data)
	}
	if a1.Size != 5 {
		t.Errorf("size: got %d", a1.Size)
	}

	if n := b.Prune(map[string]bool{}); n != 1 || b.Len() != 0 {
		t.Errorf("prune: removed %d, left %d", n, b.Len())
	}
}

func TestRef_IsStableHex(t *testing.T) {
	r := attachments.Ref([]byte("abc"))
	if len(r) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(r))
	}
	if r != attachments.Ref([]byte("abc")) {
		t.Error("ref not deterministic")
	}
}

func TestUpload_Completes(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 100<<10)
	u := attachments.NewUpload("big.bin", "application/octet-stream", int64(len(data)), attachments.DefaultLimits())

	if u.State() != attachments.StatePending {
		t.Fatalf("initial state: %s", u.State())
	}
	got, err := u.Run(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != len(data) {
		t.Errorf("copied %d bytes, want %d", len(got), len(data))
	}
	if u.State() != attachments.StateComplete || u.Progress() != 100 {
		t.Errorf("state=%s progress=%d", u.State(), u.Progress())
	}

	if _, err := u.Run(context.Background(), bytes.NewReader(data)); !errors.Is(err, attachments.ErrNotPending) {
		t.Errorf("second Run: expected ErrNotPending, got %v", err)
	}
}

func TestUpload_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := attachments.NewUpload("a.txt", "text/plain", 3, attachments.DefaultLimits())
	if _, err := u.Run(ctx, strings.NewReader("abc")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if u.State() != attachments.StateCancelled {
		t.Errorf("state: %s", u.State())
	}
}

func TestUpload_OversizeFails(t *testing.T) {
	l := attachments.Limits{MaxFiles: 1, MaxBytes: 10}
	u := attachments.NewUpload("a.txt", "text/plain", 0, l)

	if _, err := u.Run(context.Background(), strings.NewReader(strings.Repeat("y", 11))); !errors.Is(err, attachments.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if u.State() != attachments.StateFailed {
		t.Errorf("state: %s", u.State())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestUpload_ReadErrorFails(t *testing.T) {
	u := attachments.NewUpload("a.txt", "text/plain", 5, attachments.DefaultLimits())
	if _, err := u.Run(context.Background(), failingReader{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected read error, got %v", err)
	}
	if u.State() != attachments.StateFailed || u.Err() == nil {
		t.Errorf("state=%s err=%v", u.State(), u.Err())
	}
}

func TestFormatSize(t *testing.T) {
	if got := attachments.FormatSize(25 << 20); got != "25 MiB" {
		t.Errorf("got %q", got)
	}
}
