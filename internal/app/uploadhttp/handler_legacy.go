package uploadhttp

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// uploadLegacy принимает старую multipart-загрузку одним запросом, без
// докачки. Тело читается потоково, каждая часть поля "files" сохраняется
// под свободным именем в корне назначения.
func (a *Server) uploadLegacy(w http.ResponseWriter, r *http.Request) {
	reader, err := r.MultipartReader()
	if err != nil {
		http.Error(w, "no files part", http.StatusBadRequest)
		return
	}

	saved := 0
	sawField := false
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if part.FormName() != "files" {
			_ = part.Close()
			continue
		}
		sawField = true
		if strings.TrimSpace(part.FileName()) == "" {
			_ = part.Close()
			continue
		}

		if _, err = a.uploads.SaveWhole(part.FileName(), part); err != nil {
			_ = part.Close()
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = part.Close()
		saved++
	}

	if !sawField {
		http.Error(w, "no files part", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "Uploaded %d file(s). <a href='/'>Back</a>", saved)
}
