package uploadhttp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

// uploadRequest содержит разобранные параметры цели загрузки.
type uploadRequest struct {
	name    string
	relPath string
	size    int64
	offset  int64
}

// requireUploadRequest валидирует query-параметры и сам отвечает 400 при ошибке.
func (a *Server) requireUploadRequest(w http.ResponseWriter, r *http.Request, needOffset bool) (*uploadRequest, bool) {
	req, err := newUploadRequest(r, needOffset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	return req, true
}

// newUploadRequest разбирает параметры протокола из query string. Пустые
// числовые параметры трактуются как 0 — так ведёт себя и браузерный клиент.
func newUploadRequest(r *http.Request, needOffset bool) (*uploadRequest, error) {
	q := r.URL.Query()

	name := q.Get(uploadproto.ParamName)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	size, err := parseNonNegative(q.Get(uploadproto.ParamSize))
	if err != nil {
		return nil, fmt.Errorf("invalid size: %w", err)
	}

	req := &uploadRequest{
		name:    name,
		relPath: q.Get(uploadproto.ParamRelPath),
		size:    size,
	}

	if needOffset {
		offset, err := parseNonNegative(q.Get(uploadproto.ParamOffset))
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
		req.offset = offset
	}

	return req, nil
}

func parseNonNegative(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must be non-negative")
	}

	return n, nil
}
