package uploadsvc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStatus_NothingReceived(t *testing.T) {
	s := newTestUploads(t)

	st, err := s.Status("none.txt", "", 100)
	if err != nil {
		t.Fatal(err)
	}
	if st.Received != 0 || st.Complete {
		t.Fatalf("status = %+v, want zero and not complete", st)
	}
}

func TestStatus_PartialReportsItsLength(t *testing.T) {
	s := newTestUploads(t)
	appendString(t, s, "a.bin", "dir", 1000, 0, "0123456789")

	st, err := s.Status("a.bin", "dir", 1000)
	if err != nil {
		t.Fatal(err)
	}
	if st.Received != 10 || st.Complete {
		t.Fatalf("status = %+v, want received=10 complete=false", st)
	}
}

func TestStatus_FinalMatchingSizeIsComplete(t *testing.T) {
	s := newTestUploads(t)
	appendString(t, s, "a.bin", "", 10, 0, "0123456789")
	if _, err := s.Finalize("a.bin", "", 10); err != nil {
		t.Fatal(err)
	}

	st, err := s.Status("a.bin", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if st.Received != 10 || !st.Complete {
		t.Fatalf("status = %+v, want received=10 complete=true", st)
	}
}

func TestStatus_FinalWithoutDeclaredSizeIsComplete(t *testing.T) {
	s := newTestUploads(t)
	appendString(t, s, "a.bin", "", 0, 0, "0123456789")
	if _, err := s.Finalize("a.bin", "", 0); err != nil {
		t.Fatal(err)
	}

	st, err := s.Status("a.bin", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if st.Received != 10 || !st.Complete {
		t.Fatalf("status = %+v, want received=10 complete=true", st)
	}
}

// Финальный файл другого размера — имя занято посторонним содержимым: отдаём
// фактический размер без признака завершённости, развязка на финализации.
func TestStatus_FinalWithDifferentSizeIsAmbiguous(t *testing.T) {
	s := newTestUploads(t)
	if err := os.WriteFile(filepath.Join(s.Root, "a.bin"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := s.Status("a.bin", "", 1000)
	if err != nil {
		t.Fatal(err)
	}
	if st.Received != 3 || st.Complete {
		t.Fatalf("status = %+v, want received=3 complete=false", st)
	}
}

// Частичный файл главнее финального: докачка продолжается в staging.
func TestStatus_PartialWinsOverFinal(t *testing.T) {
	s := newTestUploads(t)
	if err := os.WriteFile(filepath.Join(s.Root, "a.bin"), []byte("unrelated"), 0o644); err != nil {
		t.Fatal(err)
	}
	appendString(t, s, "a.bin", "", 100, 0, "1234")

	st, err := s.Status("a.bin", "", 100)
	if err != nil {
		t.Fatal(err)
	}
	if st.Received != 4 || st.Complete {
		t.Fatalf("status = %+v, want received=4 complete=false", st)
	}
}
