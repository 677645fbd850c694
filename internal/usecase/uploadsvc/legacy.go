package uploadsvc

import (
	"io"
	"os"
	"path/filepath"
)

// SaveWhole сохраняет файл одним куском в корень назначения, подбирая
// свободное имя. Путь legacy-загрузки: без докачки и без staging-каталога.
func (s *Uploads) SaveWhole(name string, r io.Reader) (string, error) {
	dst := uniquePath(s.finalPath(name, ""))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}

	if _, err = io.CopyBuffer(writerOnly{f}, r, make([]byte, appendBufSize)); err != nil {
		f.Close()
		return "", err
	}

	return dst, f.Close()
}
