package uploadsvc

import (
	"github.com/sir_venger/upload_lite/internal/models"
)

// Status сообщает, сколько байт цели (name, rel) уже надёжно принято.
//
// Частичный файл главнее финального: его длина — точка докачки. Финальный файл
// считается завершением, только когда размер не объявлен (size == 0) или
// совпал. Финальный файл другого размера отражается как received = фактический
// размер без признака завершённости: имя занято посторонним содержимым, и
// развязка откладывается до финализации.
func (s *Uploads) Status(name, rel string, size int64) (models.UploadStatus, error) {
	n, ok, err := statFile(s.partPath(name, rel))
	if err != nil {
		return models.UploadStatus{}, err
	}
	if ok {
		return models.UploadStatus{Received: n}, nil
	}

	n, ok, err = statFile(s.finalPath(name, rel))
	if err != nil {
		return models.UploadStatus{}, err
	}
	if !ok {
		return models.UploadStatus{}, nil
	}

	if size == 0 || n == size {
		received := size
		if received == 0 {
			received = n
		}
		return models.UploadStatus{Received: received, Complete: true}, nil
	}

	return models.UploadStatus{Received: n}, nil
}
