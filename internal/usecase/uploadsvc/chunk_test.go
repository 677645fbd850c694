package uploadsvc

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sir_venger/upload_lite/internal/models"
)

func TestAppendChunk_SequentialOffsets(t *testing.T) {
	s := newTestUploads(t)

	if n := appendString(t, s, "hello.txt", "docs", 11, 0, "hello "); n != 6 {
		t.Fatalf("received = %d, want 6", n)
	}
	if n := appendString(t, s, "hello.txt", "docs", 11, 6, "world"); n != 11 {
		t.Fatalf("received = %d, want 11", n)
	}

	if got := readFile(t, s.partPath("hello.txt", "docs")); got != "hello world" {
		t.Fatalf("partial content = %q", got)
	}
}

func TestAppendChunk_OffsetMismatchDoesNotWrite(t *testing.T) {
	s := newTestUploads(t)
	appendString(t, s, "a.bin", "", 0, 0, "12345")

	_, err := s.AppendChunk(context.Background(), "a.bin", "", 0, 3, strings.NewReader("xxx"))

	var offsetErr *models.OffsetError
	if !errors.As(err, &offsetErr) {
		t.Fatalf("want OffsetError, got %v", err)
	}
	if offsetErr.Received != 5 {
		t.Fatalf("conflict carries %d, want true length 5", offsetErr.Received)
	}
	// Частичный файл не должен измениться.
	if got := readFile(t, s.partPath("a.bin", "")); got != "12345" {
		t.Fatalf("partial modified on conflict: %q", got)
	}
}

func TestAppendChunk_SizeExceededAfterWrite(t *testing.T) {
	s := newTestUploads(t)

	n, err := s.AppendChunk(context.Background(), "a.bin", "", 4, 0, strings.NewReader("123456"))
	if !errors.Is(err, models.ErrSizeExceeded) {
		t.Fatalf("want ErrSizeExceeded, got %v", err)
	}
	if n != 6 {
		t.Fatalf("received = %d, want 6", n)
	}
	// Проверка пост-фактум: байты остаются на диске, отката нет.
	if got := readFile(t, s.partPath("a.bin", "")); got != "123456" {
		t.Fatalf("partial = %q, want all written bytes kept", got)
	}
}

func TestAppendChunk_ZeroDeclaredSizeIsUnbounded(t *testing.T) {
	s := newTestUploads(t)

	appendString(t, s, "stream.bin", "", 0, 0, strings.Repeat("x", 4096))
	if n := appendString(t, s, "stream.bin", "", 0, 4096, "tail"); n != 4100 {
		t.Fatalf("received = %d, want 4100", n)
	}
}

func TestAppendChunk_TargetsAreIndependent(t *testing.T) {
	s := newTestUploads(t)

	appendString(t, s, "a.txt", "one", 0, 0, "AAA")
	appendString(t, s, "a.txt", "two", 0, 0, "BB")

	if n := appendString(t, s, "a.txt", "one", 0, 3, "A"); n != 4 {
		t.Fatalf("received = %d, want 4", n)
	}
	if got := readFile(t, s.partPath("a.txt", "two")); got != "BB" {
		t.Fatalf("unrelated target modified: %q", got)
	}
}
