package models

// UploadStatus описывает, сколько байт цели уже принято сервером.
// Complete выставляется только когда финальный файл согласуется с
// декларированным размером.
type UploadStatus struct {
	Received int64
	Complete bool
}

// FinalizeResult возвращается после успешной финализации. Note поясняет
// небанальные исходы: повторный finish, победу конкурентного вызова и т.п.
type FinalizeResult struct {
	Path string
	Note string
}
