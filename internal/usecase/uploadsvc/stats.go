package uploadsvc

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// CountFinalized обходит дерево назначения и возвращает число завершённых
// файлов. Staging-каталог исключается по имени на каждом уровне, файлы с
// суффиксом частичной загрузки не считаются. Значение не кэшируется.
func (s *Uploads) CountFinalized() (int, error) {
	total := 0
	err := filepath.WalkDir(s.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		if d.IsDir() {
			if d.Name() == s.StagingDir && p != s.Root {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && !strings.HasSuffix(d.Name(), partSuffix) {
			total++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}
