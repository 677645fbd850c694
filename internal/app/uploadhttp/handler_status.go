package uploadhttp

import (
	"net/http"

	"github.com/sir_venger/upload_lite/pkg/httperrors"
	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

// uploadStatus отвечает числом уже принятых байт для цели (name, relpath).
// Клиент использует ответ как точку докачки перед отправкой кусков.
func (a *Server) uploadStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireUploadRequest(w, r, false)
	if !ok {
		return
	}

	st, err := a.uploads.Status(req.name, req.relPath, req.size)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadproto.StatusResponse{
		Received: st.Received,
		Complete: st.Complete,
	})
}
