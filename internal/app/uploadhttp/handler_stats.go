package uploadhttp

import (
	"net/http"

	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

// stats возвращает количество завершённых файлов под корнем назначения.
func (a *Server) stats(w http.ResponseWriter, _ *http.Request) {
	count, err := a.uploads.CountFinalized()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, uploadproto.StatsResponse{Files: count})
}
