package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestStoreAndGet(t *testing.T) {
	s := New("http://cdn.test/photos")

	url, err := s.Store(context.Background(), "abc123.png", strings.NewReader("png"), "image/png")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if url != "http://cdn.test/photos/abc123.png" {
		t.Fatalf("url=%q", url)
	}
	o, ok := s.Get("abc123.png")
	if !ok || string(o.Body) != "png" || o.ContentType != "image/png" {
		t.Fatalf("object=%+v ok=%v", o, ok)
	}
}

func TestStoreFail(t *testing.T) {
	s := New("")
	s.Fail = true
	if _, err := s.Store(context.Background(), "k", strings.NewReader("x"), ""); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestSlowBodyDoesNotBlockReaders(t *testing.T) {
	s := New("")
	pr, pw := io.Pipe()

	done := make(chan error, 1)
	go func() {
		_, err := s.Store(context.Background(), "slow.jpg", pr, "image/jpeg")
		done <- err
	}()

	read := make(chan int, 1)
	go func() { read <- s.Len() }()
	select {
	case n := <-read:
		if n != 0 {
			t.Fatalf("len=%d while upload in flight", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Len blocked behind a pending upload")
	}

	if _, err := s.Store(context.Background(), "fast.jpg", strings.NewReader("x"), ""); err != nil {
		t.Fatalf("concurrent Store: %v", err)
	}

	_, _ = pw.Write([]byte("jpeg"))
	_ = pw.Close()
	if err := <-done; err != nil {
		t.Fatalf("slow Store: %v", err)
	}
	if o, ok := s.Get("slow.jpg"); !ok || string(o.Body) != "jpeg" {
		t.Fatalf("object=%+v ok=%v", o, ok)
	}
}
