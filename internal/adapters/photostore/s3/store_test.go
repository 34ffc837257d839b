package s3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// fakeS3 guarda los PUT que recibe; no implementa nada más.
type fakeS3 struct {
	mu     sync.Mutex
	puts   map[string][]byte
	types  map[string]string
	status int
}

func newFake() *fakeS3 {
	return &fakeS3{puts: map[string][]byte{}, types: map[string]string{}, status: http.StatusOK}
}

func (f *fakeS3) Do(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if req.Method != http.MethodPut || f.status != http.StatusOK {
		status := f.status
		if status == http.StatusOK {
			status = http.StatusNotImplemented
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader("<Error><Code>InternalError</Code></Error>")),
			Header:     http.Header{"Content-Type": {"application/xml"}},
			Request:    req,
		}, nil
	}

	body, _ := io.ReadAll(req.Body)
	if dec, ok := decodeChunked(body); ok {
		body = dec
	}
	f.puts[req.URL.Path] = body
	f.types[req.URL.Path] = req.Header.Get("Content-Type")
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(nil)),
		Header:     http.Header{"ETag": {`"etag"`}},
		Request:    req,
	}, nil
}

// decodeChunked soporta el payload aws-chunked de un solo chunk.
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 || parts[2] != "0" {
		return nil, false
	}
	head := strings.SplitN(parts[0], ";", 2)[0]
	var n int
	for _, c := range head {
		switch {
		case c >= '0' && c <= '9':
			n = n*16 + int(c-'0')
		case c >= 'a' && c <= 'f':
			n = n*16 + int(c-'a') + 10
		default:
			return nil, false
		}
	}
	if n != len(parts[1]) {
		return nil, false
	}
	return []byte(parts[1]), true
}

func newTestStore(t *testing.T, fake *fakeS3) *Store {
	t.Helper()
	st, err := New(context.Background(), Config{
		BaseURL:         "https://s3-us-west-1.amazonaws.com/",
		Bucket:          "catcollector",
		Region:          "us-west-1",
		Endpoint:        "https://mock.s3.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		HTTPClient:      fake,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return st
}

func TestStorePutsObjectAndBuildsURL(t *testing.T) {
	fake := newFake()
	st := newTestStore(t, fake)

	url, err := st.Store(context.Background(), "bd504f.JPG", strings.NewReader("img-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if url != "https://s3-us-west-1.amazonaws.com/catcollector/bd504f.JPG" {
		t.Fatalf("url=%q", url)
	}

	got, ok := fake.puts["/catcollector/bd504f.JPG"]
	if !ok {
		t.Fatalf("no PUT recorded: %v", fake.puts)
	}
	if string(got) != "img-bytes" {
		t.Fatalf("body=%q", got)
	}
	if ct := fake.types["/catcollector/bd504f.JPG"]; ct != "image/jpeg" {
		t.Fatalf("content-type=%q", ct)
	}
}

func TestStoreReportsBackendError(t *testing.T) {
	fake := newFake()
	fake.status = http.StatusForbidden
	st := newTestStore(t, fake)

	if _, err := st.Store(context.Background(), "abc123.png", strings.NewReader("x"), "image/png"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(context.Background(), Config{BaseURL: "https://x/"}); err == nil {
		t.Fatalf("expected bucket error")
	}
	if _, err := New(context.Background(), Config{Bucket: "b"}); err == nil {
		t.Fatalf("expected base url error")
	}
}

func TestURLAddsSlash(t *testing.T) {
	st, err := New(context.Background(), Config{BaseURL: "http://minio:9000", Bucket: "cats", AccessKeyID: "a", SecretAccessKey: "b"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := st.URL("k.jpg"); got != "http://minio:9000/cats/k.jpg" {
		t.Fatalf("URL=%q", got)
	}
}
