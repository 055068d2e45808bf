package ocrclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecognize_PostsMultipartImage(t *testing.T) {
	var gotPath string
	var gotImage []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		file, _, err := r.FormFile("image")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer file.Close()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		gotImage = buf[:n]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"number": 42}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "/process_pubg")
	number, err := c.Recognize(context.Background(), []byte("pngbytes"))
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if number != 42 {
		t.Fatalf("number = %d, want 42", number)
	}
	if gotPath != "/process_pubg" {
		t.Fatalf("path = %q, want /process_pubg", gotPath)
	}
	if string(gotImage) != "pngbytes" {
		t.Fatalf("image payload = %q", gotImage)
	}
}

func TestRecognize_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "/process_pubg")
	if _, err := c.Recognize(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestRecognize_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "/process_pubg")
	if _, err := c.Recognize(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected error on response without number")
	}
}
