package uploadsvc

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	defaultFileName = "upload.bin"
	maxSegmentLen   = 255
	maxDepth        = 50
	partSuffix      = ".part"
)

// safeSegment — допустимый сегмент относительного пути: ограниченный набор
// символов и длина до 255. Всё, что не подошло, заменяется целиком на "_" —
// санитизация деградирует, а не отклоняет запрос.
var safeSegment = regexp.MustCompile(`^[ .A-Za-z0-9_\-()+=@#,&{}!$%^~\[\]]{1,255}$`)

var (
	unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// safeName приводит клиентское имя файла к безопасному подмножеству символов.
// Пробельные последовательности схлопываются в "_", а не удаляются: "my
// photo.jpg" превращается в "my_photo.jpg". Пустой результат заменяется
// фиксированным именем по умолчанию, чтобы цель всегда детерминированно
// отображалась в один и тот же путь.
func safeName(name string) string {
	s := strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = unsafeNameChars.ReplaceAllString(s, "")
	s = strings.Trim(s, "._")
	if len(s) > maxSegmentLen {
		s = s[:maxSegmentLen]
	}
	if s == "" {
		return defaultFileName
	}

	return s
}

// safeRelPath нормализует относительный путь клиента: режет по обоим видам
// слэшей, отбрасывает пустые сегменты, "." и "..", заменяет недопустимые
// сегменты на "_" и молча обрезает хвост глубже maxDepth.
func safeRelPath(rel string) string {
	var parts []string
	for _, raw := range strings.Split(strings.ReplaceAll(rel, "\\", "/"), "/") {
		seg := strings.TrimSpace(raw)
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		if !safeSegment.MatchString(seg) {
			seg = "_"
		}
		parts = append(parts, seg)
		if len(parts) >= maxDepth {
			break
		}
	}

	return filepath.Join(parts...)
}

// partPath возвращает путь частичного файла цели (name, rel) под staging-корнем.
func (s *Uploads) partPath(name, rel string) string {
	return filepath.Join(s.stagingRoot(), safeRelPath(rel), safeName(name)+partSuffix)
}

// finalPath возвращает предпочтительный конечный путь цели (name, rel).
func (s *Uploads) finalPath(name, rel string) string {
	return filepath.Join(s.Root, safeRelPath(rel), safeName(name))
}

// ResolvePath превращает клиентский относительный путь (включая имя файла)
// в путь строго под корнем назначения. Используется раздачей файлов.
//
// Имя здесь не переписывается: финализация умеет дизамбигуировать коллизии в
// "a (1).txt", и такие файлы должны находиться по своему реальному имени.
// Траверс гасится канонизацией пути, принадлежность корню проверяется явно.
func (s *Uploads) ResolvePath(rel string) (string, bool) {
	rel = strings.ReplaceAll(rel, "\\", "/")
	p := filepath.Join(s.Root, filepath.FromSlash(path.Clean("/"+rel)))

	root := filepath.Clean(s.Root)
	if p == root || !strings.HasPrefix(p, root+string(filepath.Separator)) {
		return "", false
	}

	return p, true
}
