// Package uploadhttp реализует Upload API — HTTP-интерфейс резюмируемой
// загрузки файлов поверх локального каталога. Основные эндпоинты:
//   - GET /upload/status — сколько байт цели уже принято (точка докачки).
//   - POST /upload/chunk — дозапись куска по offset; 409 при расхождении с длиной частичного файла.
//   - POST /upload/finish — идемпотентная финализация: rename частичного файла в конечное место.
//   - GET /stats — число завершённых файлов под корнем назначения.
//   - POST /upload — legacy multipart-загрузка целиком, без докачки.
//   - GET /downloads/* — раздача финализированных файлов.
//   - GET / — встроенная страница загрузчика.
package uploadhttp
