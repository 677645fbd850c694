package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("no partial upload found")
	ErrSizeExceeded = errors.New("received more bytes than declared size")
)

// OffsetError возвращается, когда offset клиента не совпал с реальной длиной
// частичного файла. Received несёт истинное число принятых байт, по которому
// клиент выравнивается и повторяет отправку.
type OffsetError struct {
	Received int64
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("offset mismatch: %d bytes already received", e.Received)
}
