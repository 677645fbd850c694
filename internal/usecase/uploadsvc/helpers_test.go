package uploadsvc

import (
	"context"
	"os"
	"strings"
	"testing"
)

func newTestUploads(t *testing.T) *Uploads {
	t.Helper()

	s := New(Deps{
		Root:       t.TempDir(),
		StagingDir: ".incoming",
	})
	if err := s.Bootstrap(); err != nil {
		t.Fatal(err)
	}

	return s
}

func appendString(t *testing.T, s *Uploads, name, rel string, size, offset int64, data string) int64 {
	t.Helper()

	n, err := s.AppendChunk(context.Background(), name, rel, size, offset, strings.NewReader(data))
	if err != nil {
		t.Fatalf("append %q at %d: %v", data, offset, err)
	}

	return n
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return string(b)
}
