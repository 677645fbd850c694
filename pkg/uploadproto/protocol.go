// Package uploadproto описывает HTTP-протокол резюмируемой загрузки.
package uploadproto

// Маршруты протокола.
const (
	StatusPath       = "/upload/status"
	ChunkPath        = "/upload/chunk"
	FinishPath       = "/upload/finish"
	StatsPath        = "/stats"
	LegacyUploadPath = "/upload"
	DownloadPrefix   = "/downloads/"
)

// Query-параметры цели загрузки.
const (
	ParamName    = "name"
	ParamSize    = "size"
	ParamOffset  = "offset"
	ParamRelPath = "relpath"
)

// StatusResponse — ответ /upload/status.
type StatusResponse struct {
	Received int64 `json:"received"`
	Complete bool  `json:"complete,omitempty"`
}

// ChunkResponse — ответ /upload/chunk; при 409 поле received несёт истинную
// длину частичного файла, с которой клиент обязан продолжить.
type ChunkResponse struct {
	Received int64 `json:"received"`
}

// FinishResponse — ответ /upload/finish.
type FinishResponse struct {
	OK   bool   `json:"ok"`
	Path string `json:"path"`
	Note string `json:"note,omitempty"`
}

// StatsResponse — ответ /stats.
type StatsResponse struct {
	Files int `json:"files"`
}
