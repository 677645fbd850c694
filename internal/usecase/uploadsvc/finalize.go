package uploadsvc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sir_venger/upload_lite/internal/models"
)

const (
	renameAttempts  = 10
	renameBaseDelay = 200 * time.Millisecond
)

// Пояснения к исходам финализации; уходят клиенту в поле note.
const (
	noteAlreadyFinalized = "already finalized"
	noteConcurrentWinner = "finalized concurrently"
	noteRecoveredFinal   = "final existed after error"
)

// moveOutcome перечисляет законные исходы переноса частичного файла. Каждый
// из них — ожидаемая ветка протокола, а не исключение.
type moveOutcome int

const (
	moveRenamed moveOutcome = iota
	moveConcurrentWinner
	moveRecovered
	moveVanished
	moveFailed
)

// Finalize переносит завершённый частичный файл цели (name, rel) в конечное
// место — атомарно и идемпотентно.
//
// Повторный finish для уже финализированной цели получает тот же успех, что и
// первый: клиент, потерявший ответ на обрыве сети, может безопасно ретраить.
// Если предпочтительное имя занято посторонним файлом, а частичный ещё жив,
// подбирается свободное имя с числовым суффиксом " (N)" перед расширением.
func (s *Uploads) Finalize(name, rel string, size int64) (models.FinalizeResult, error) {
	part := s.partPath(name, rel)
	final := s.finalPath(name, rel)

	_, partExists, err := statFile(part)
	if err != nil {
		return models.FinalizeResult{}, err
	}
	_, finalExists, err := statFile(final)
	if err != nil {
		return models.FinalizeResult{}, err
	}

	if finalExists {
		if !partExists {
			// Переносить нечего — цель уже на месте.
			return models.FinalizeResult{Path: final, Note: noteAlreadyFinalized}, nil
		}
		// Имя занято посторонним содержимым, подбираем свободное.
		final = uniquePath(final)
	}

	if !partExists {
		return models.FinalizeResult{}, models.ErrNotFound
	}

	if err = os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return models.FinalizeResult{}, err
	}

	outcome, moveErr := s.moveWithRetry(part, final, size)
	switch outcome {
	case moveRenamed:
		return models.FinalizeResult{Path: final}, nil
	case moveConcurrentWinner:
		return models.FinalizeResult{Path: final, Note: noteConcurrentWinner}, nil
	case moveRecovered:
		return models.FinalizeResult{Path: final, Note: noteRecoveredFinal}, nil
	case moveVanished:
		return models.FinalizeResult{}, models.ErrNotFound
	default:
		return models.FinalizeResult{}, fmt.Errorf("finalize failed: %w", moveErr)
	}
}

// moveWithRetry многократно пробует атомарный rename с линейным бэкоффом,
// пережидая внешние блокировки (антивирус, индексация), затем откатывается на
// copy+delete, переживающий границы томов. Исход определяется по фактическому
// конечному состоянию на диске, а не по первой попавшейся ошибке.
func (s *Uploads) moveWithRetry(src, dst string, size int64) (moveOutcome, error) {
	var lastErr error
	for i := 0; i < renameAttempts; i++ {
		err := os.Rename(src, dst)
		if err == nil {
			return moveRenamed, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			// Частичный файл исчез под ногами: либо конкурентный finalize
			// успел первым, либо переносить и правда нечего.
			if _, ok, statErr := statFile(dst); statErr == nil && ok {
				return moveConcurrentWinner, nil
			}
			return moveVanished, err
		}
		lastErr = err
		time.Sleep(renameBaseDelay * time.Duration(i+1))
	}

	if err := copyThenDelete(src, dst); err != nil {
		// Последняя проверка: если финал всё же появился и размер сходится,
		// убираем хвост и считаем перенос успешным, а не пугаем клиента
		// ложной ошибкой.
		if n, ok, statErr := statFile(dst); statErr == nil && ok && (size == 0 || n == size) {
			_ = os.Remove(src)
			return moveRecovered, nil
		}
		if lastErr == nil {
			lastErr = err
		}
		return moveFailed, lastErr
	}

	return moveRenamed, nil
}

// copyThenDelete переносит файл через скрытую копию рядом с целью и финальный
// rename, после чего удаляет исходник. Неатомарно, зато работает между томами.
func copyThenDelete(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := filepath.Join(filepath.Dir(dst), "."+uuid.NewString()+".tmp")
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err = out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err = os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Remove(src)
}

// uniquePath подбирает свободное имя, добавляя " (N)" перед расширением.
// Check-then-use не синхронизирован с другими писателями; при одновременной
// борьбе за имя побеждает тот, чей rename пройдёт первым.
func uniquePath(p string) string {
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return p
	}

	ext := filepath.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	for i := 1; ; i++ {
		cand := fmt.Sprintf("%s (%d)%s", stem, i, ext)
		if _, err := os.Stat(cand); errors.Is(err, fs.ErrNotExist) {
			return cand
		}
	}
}
