package uploadhttp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sir_venger/upload_lite/internal/config"
	"github.com/sir_venger/upload_lite/internal/usecase/uploadsvc"
	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

// Server обслуживает HTTP API резюмируемой загрузки поверх локального каталога.
type Server struct {
	uploads *uploadsvc.Uploads
	cfg     *config.Config
}

// NewServer создаёт HTTP-обработчик и готовит каталоги на диске.
func NewServer(cfg *config.Config) (http.Handler, error) {
	svc := uploadsvc.New(uploadsvc.Deps{
		Root:       cfg.UploadRoot,
		StagingDir: cfg.StagingDir,
	})
	if err := svc.Bootstrap(); err != nil {
		return nil, err
	}

	srv := &Server{
		uploads: svc,
		cfg:     cfg,
	}

	return srv.routes(), nil
}

// routes регистрирует обработчики протокола и вспомогательные страницы.
func (a *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", a.index)
	r.Get(uploadproto.StatusPath, a.uploadStatus)
	r.Post(uploadproto.ChunkPath, a.uploadChunk)
	r.Post(uploadproto.FinishPath, a.uploadFinish)
	r.Get(uploadproto.StatsPath, a.stats)
	r.Post(uploadproto.LegacyUploadPath, a.uploadLegacy)
	r.Get(uploadproto.DownloadPrefix+"*", a.download)

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
