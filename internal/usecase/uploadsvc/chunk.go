package uploadsvc

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sir_venger/upload_lite/internal/models"
)

// appendBufSize — размер серверного буфера при чтении тела запроса.
const appendBufSize = 8 << 20

// AppendChunk дозаписывает body в конец частичного файла цели (name, rel).
//
// Протокол оптимистичный: если offset клиента не совпал с текущей длиной
// частичного файла, запись не выполняется и возвращается models.OffsetError с
// истинной длиной — клиент выравнивается и повторяет. Контракт клиента: один
// писатель на цель, куски строго по порядку; сервер конкурентные дозаписи в
// одну цель не сериализует.
func (s *Uploads) AppendChunk(ctx context.Context, name, rel string, size, offset int64, body io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	part := s.partPath(name, rel)
	current, _, err := statFile(part)
	if err != nil {
		return 0, err
	}
	if offset != current {
		return 0, &models.OffsetError{Received: current}
	}

	if err = os.MkdirAll(filepath.Dir(part), 0o755); err != nil {
		return 0, err
	}

	f, err := os.OpenFile(part, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	// Потоковая дозапись фиксированными кусками, тело целиком в память не
	// поднимается. writerOnly прячет ReadFrom у *os.File, иначе CopyBuffer
	// проигнорирует наш буфер.
	written, err := io.CopyBuffer(writerOnly{f}, body, make([]byte, appendBufSize))
	if err != nil {
		return 0, err
	}

	received := current + written
	// Проверка декларированного размера пост-фактум: байты уже на диске,
	// отката нет — клиент должен начать эту цель заново.
	if size > 0 && received > size {
		return received, fmt.Errorf("%w: got %d, declared %d", models.ErrSizeExceeded, received, size)
	}

	return received, nil
}

type writerOnly struct {
	io.Writer
}
