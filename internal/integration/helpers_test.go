package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/sir_venger/upload_lite/internal/app/uploadhttp"
	"github.com/sir_venger/upload_lite/internal/config"
	"github.com/sir_venger/upload_lite/pkg/uploadproto"
)

// newServer поднимает полный HTTP-стек загрузчика поверх временного каталога.
func newServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	root := t.TempDir()
	cfg := &config.Config{
		ListenAddr: ":0",
		UploadRoot: root,
		StagingDir: ".incoming",
	}

	h, err := uploadhttp.NewServer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return srv, root
}

func targetQuery(name, rel string, size int64) url.Values {
	q := url.Values{}
	q.Set(uploadproto.ParamName, name)
	q.Set(uploadproto.ParamSize, strconv.FormatInt(size, 10))
	q.Set(uploadproto.ParamRelPath, rel)
	return q
}

func getStatus(t *testing.T, base, name, rel string, size int64) uploadproto.StatusResponse {
	t.Helper()

	resp, err := http.Get(base + uploadproto.StatusPath + "?" + targetQuery(name, rel, size).Encode())
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status endpoint: %s", resp.Status)
	}

	var out uploadproto.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func postChunk(t *testing.T, base, name, rel string, size, offset int64, body []byte) (int, uploadproto.ChunkResponse) {
	t.Helper()

	q := targetQuery(name, rel, size)
	q.Set(uploadproto.ParamOffset, strconv.FormatInt(offset, 10))

	resp, err := http.Post(base+uploadproto.ChunkPath+"?"+q.Encode(), "application/octet-stream", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out uploadproto.ChunkResponse
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusConflict {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode, out
}

func postFinish(t *testing.T, base, name, rel string, size int64) (int, uploadproto.FinishResponse) {
	t.Helper()

	resp, err := http.Post(base+uploadproto.FinishPath+"?"+targetQuery(name, rel, size).Encode(), "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out uploadproto.FinishResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode, out
}

func getStats(t *testing.T, base string) int {
	t.Helper()

	resp, err := http.Get(base + uploadproto.StatsPath)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out uploadproto.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out.Files
}

func download(t *testing.T, base, rel string) (int, []byte) {
	t.Helper()

	resp, err := http.Get(base + uploadproto.DownloadPrefix + rel)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, b
}

// testPayload детерминированно генерирует n байт.
func testPayload(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}
