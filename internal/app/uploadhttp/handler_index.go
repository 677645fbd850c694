package uploadhttp

import (
	_ "embed"
	"html/template"
	"net/http"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// index отдаёт встроенную страницу загрузчика с актуальным счётчиком файлов.
func (a *Server) index(w http.ResponseWriter, _ *http.Request) {
	count, err := a.uploads.CountFinalized()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = pageTemplate.Execute(w, map[string]any{
		"UploadDir": a.cfg.UploadRoot,
		"FileCount": count,
	})
}
