package uploadhttp

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

// download отдаёт финализированный файл по относительному пути. Путь
// канонизируется и проверяется на принадлежность корню, но имя файла не
// переписывается: дизамбигуированные файлы вида "a (1).txt" отдаются по тому
// имени, под которым их сохранила финализация.
func (a *Server) download(w http.ResponseWriter, r *http.Request) {
	p, ok := a.uploads.ResolvePath(chi.URLParam(r, "*"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, p)
}
