package uploadhttp

import (
	"net/http"

	"github.com/sir_venger/upload_lite/pkg/httperrors"
	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

// uploadFinish переводит собранный частичный файл в конечное место.
func (a *Server) uploadFinish(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireUploadRequest(w, r, false)
	if !ok {
		return
	}

	res, err := a.uploads.Finalize(req.name, req.relPath, req.size)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadproto.FinishResponse{
		OK:   true,
		Path: res.Path,
		Note: res.Note,
	})
}
