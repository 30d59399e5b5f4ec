package imagehost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lecture-deck-api/internal/config"
)

func newTestClient(endpoint string) *Client {
	return NewClient(&config.ImageHostConfig{
		Endpoint:  endpoint,
		APIKey:    "test-key",
		MaxSizeMB: 1,
	})
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "pic.png" {
			t.Errorf("filename = %q", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"http://cdn.example.com/pic.png"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	url, err := c.Upload(context.Background(), "pic.png", strings.NewReader("image-bytes"), 11)
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if url != "http://cdn.example.com/pic.png" {
		t.Errorf("url = %q", url)
	}
}

func TestUploadRejectsOversized(t *testing.T) {
	c := newTestClient("http://unused.example.com")
	_, err := c.Upload(context.Background(), "big.png", strings.NewReader("x"), c.MaxSize()+1)
	if err == nil {
		t.Fatal("expected size rejection")
	}
}

func TestUploadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Upload(context.Background(), "pic.png", strings.NewReader("x"), 1); err == nil {
		t.Fatal("expected error on 502 response")
	}
}

func TestUploadEmptyURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Upload(context.Background(), "pic.png", strings.NewReader("x"), 1); err == nil {
		t.Fatal("expected error on empty url")
	}
}
