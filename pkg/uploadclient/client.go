package uploadclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

const (
	// clientChunkSize — размер куска при докачке, как у браузерного клиента.
	clientChunkSize = 16 << 20
	// treeConcurrency ограничивает число параллельно загружаемых целей.
	// Внутри одной цели куски всегда идут строго последовательно.
	treeConcurrency = 4
)

// Target описывает одну цель загрузки на сервере.
type Target struct {
	Name    string
	RelPath string
	Size    int64
}

type Client interface {
	// Status Узнать точку докачки цели
	Status(ctx context.Context, target Target) (uploadproto.StatusResponse, error)
	// PutChunk Отправить кусок; conflict=true означает, что сервер вернул
	// истинную длину и клиент должен выровнять offset
	PutChunk(ctx context.Context, target Target, offset int64, chunk io.Reader, length int64) (resp uploadproto.ChunkResponse, conflict bool, err error)
	// Finish Финализировать цель
	Finish(ctx context.Context, target Target) (uploadproto.FinishResponse, error)
	// UploadFile Загрузить файл с докачкой: status → куски → finish
	UploadFile(ctx context.Context, path, relPath string) (uploadproto.FinishResponse, error)
	// UploadTree Загрузить дерево каталогов, сохраняя относительные пути
	UploadTree(ctx context.Context, dir string) error
}

type httpClient struct {
	c    *http.Client
	base string
}

// New создаёт клиент загрузчика для указанного базового URL сервера.
func New(baseURL string) Client {
	return &httpClient{
		c:    &http.Client{},
		base: strings.TrimRight(baseURL, "/"),
	}
}

// Status запрашивает у сервера число уже принятых байт цели.
func (h *httpClient) Status(ctx context.Context, target Target) (uploadproto.StatusResponse, error) {
	u := h.base + uploadproto.StatusPath + "?" + targetQuery(target, -1)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return uploadproto.StatusResponse{}, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return uploadproto.StatusResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return uploadproto.StatusResponse{}, fmt.Errorf("status failed: %s", resp.Status)
	}

	var out uploadproto.StatusResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return uploadproto.StatusResponse{}, err
	}

	return out, nil
}

// PutChunk отправляет один кусок тела по заявленному offset.
func (h *httpClient) PutChunk(ctx context.Context, target Target, offset int64, chunk io.Reader, length int64) (uploadproto.ChunkResponse, bool, error) {
	u := h.base + uploadproto.ChunkPath + "?" + targetQuery(target, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, chunk)
	if err != nil {
		return uploadproto.ChunkResponse{}, false, err
	}
	req.ContentLength = length
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := h.c.Do(req)
	if err != nil {
		return uploadproto.ChunkResponse{}, false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusConflict:
		var out uploadproto.ChunkResponse
		if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return uploadproto.ChunkResponse{}, false, err
		}
		return out, resp.StatusCode == http.StatusConflict, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return uploadproto.ChunkResponse{}, false, fmt.Errorf("chunk failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
}

// Finish просит сервер финализировать цель.
func (h *httpClient) Finish(ctx context.Context, target Target) (uploadproto.FinishResponse, error) {
	u := h.base + uploadproto.FinishPath + "?" + targetQuery(target, -1)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return uploadproto.FinishResponse{}, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return uploadproto.FinishResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return uploadproto.FinishResponse{}, fmt.Errorf("finish failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out uploadproto.FinishResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return uploadproto.FinishResponse{}, err
	}

	return out, nil
}

// UploadFile загружает файл с докачкой: выясняет точку докачки, шлёт куски
// строго по порядку и финализирует цель. Ответ 409 принимается как истина
// сервера — offset выравнивается и отправка продолжается.
func (h *httpClient) UploadFile(ctx context.Context, path, relPath string) (uploadproto.FinishResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return uploadproto.FinishResponse{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return uploadproto.FinishResponse{}, err
	}

	target := Target{
		Name:    filepath.Base(path),
		RelPath: relPath,
		Size:    info.Size(),
	}

	st, err := h.Status(ctx, target)
	if err != nil {
		return uploadproto.FinishResponse{}, err
	}

	bar := newProgressBar(fmt.Sprintf("Uploading %s", target.Name), target.Size)
	offset := st.Received
	bar.SetBytes(offset)

	for offset < target.Size {
		n := target.Size - offset
		if n > clientChunkSize {
			n = clientChunkSize
		}

		resp, _, err := h.PutChunk(ctx, target, offset, io.NewSectionReader(f, offset, n), n)
		if err != nil {
			bar.Fail(err)
			return uploadproto.FinishResponse{}, err
		}
		// И при конфликте, и при успехе received сервера — новая точка отсчёта.
		offset = resp.Received
		bar.SetBytes(offset)
	}

	fin, err := h.Finish(ctx, target)
	if err != nil {
		bar.Fail(err)
		return uploadproto.FinishResponse{}, err
	}
	bar.Finish()

	return fin, nil
}

// UploadTree загружает дерево каталогов, сохраняя относительные пути файлов.
// Разные цели независимы и грузятся параллельно с ограничением.
func (h *httpClient) UploadTree(ctx context.Context, dir string) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(treeConcurrency)

	walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, filepath.Dir(p))
		if err != nil {
			return err
		}
		if rel == "." {
			rel = ""
		}
		rel = filepath.ToSlash(rel)

		eg.Go(func() error {
			_, err := h.UploadFile(egCtx, p, rel)
			return err
		})

		return nil
	})

	if walkErr != nil {
		_ = eg.Wait()
		return walkErr
	}

	return eg.Wait()
}

// targetQuery собирает query string цели; offset < 0 опускает параметр.
func targetQuery(t Target, offset int64) string {
	q := url.Values{}
	q.Set(uploadproto.ParamName, t.Name)
	q.Set(uploadproto.ParamSize, strconv.FormatInt(t.Size, 10))
	q.Set(uploadproto.ParamRelPath, t.RelPath)
	if offset >= 0 {
		q.Set(uploadproto.ParamOffset, strconv.FormatInt(offset, 10))
	}

	return q.Encode()
}
