package uploadsvc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

type Deps struct {
	// Root — каталог назначения, под которым оказываются завершённые файлы.
	Root string
	// StagingDir — имя скрытого подкаталога для частичных файлов. Имя без
	// разделителей: по нему же staging исключается из подсчёта статистики.
	StagingDir string
}

// Uploads реализует резюмируемый протокол загрузки поверх локального диска.
// Никакого состояния в памяти нет: длина частичного файла и есть вся правда
// о том, сколько байт принято, поэтому сервис переживает рестарты бесплатно.
type Uploads struct {
	Deps
}

// New конструирует сервис загрузок с заданными каталогами.
func New(deps Deps) *Uploads {
	if deps.StagingDir == "" {
		deps.StagingDir = ".incoming"
	}
	return &Uploads{Deps: deps}
}

// Bootstrap создаёт корневой и staging-каталоги на диске.
func (s *Uploads) Bootstrap() error {
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(s.stagingRoot(), 0o755)
}

func (s *Uploads) stagingRoot() string {
	return filepath.Join(s.Root, s.StagingDir)
}

// statFile возвращает размер файла и признак его существования.
func statFile(path string) (size int64, ok bool, err error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return info.Size(), true, nil
}
