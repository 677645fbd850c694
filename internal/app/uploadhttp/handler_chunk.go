package uploadhttp

import (
	"errors"
	"net/http"

	"github.com/sir_venger/upload_lite/internal/models"
	"github.com/sir_venger/upload_lite/pkg/httperrors"
	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

// uploadChunk дозаписывает тело запроса в частичный файл по заявленному offset.
func (a *Server) uploadChunk(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireUploadRequest(w, r, true)
	if !ok {
		return
	}

	received, err := a.uploads.AppendChunk(r.Context(), req.name, req.relPath, req.size, req.offset, r.Body)

	var offsetErr *models.OffsetError
	switch {
	case errors.As(err, &offsetErr):
		// Конфликт несёт истинную длину: клиент выравнивает offset и повторяет.
		writeJSON(w, http.StatusConflict, uploadproto.ChunkResponse{Received: offsetErr.Received})
	case err != nil:
		httperrors.Write(w, err)
	default:
		writeJSON(w, http.StatusOK, uploadproto.ChunkResponse{Received: received})
	}
}
