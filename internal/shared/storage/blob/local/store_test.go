package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestUploadAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	ref, size, mimeType, err := store.Upload(context.Background(), "resume.pdf", bytes.NewReader([]byte("%PDF-1.4 body")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if size != int64(len("%PDF-1.4 body")) {
		t.Fatalf("unexpected size %d", size)
	}
	if mimeType == "" {
		t.Fatalf("expected sniffed mime type")
	}
	if !strings.HasSuffix(ref, "_resume.pdf") {
		t.Fatalf("ref should keep the original name, got %q", ref)
	}

	rc, err := store.Open(context.Background(), ref)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "%PDF-1.4 body" {
		t.Fatalf("body mismatch: %q", got)
	}
}

func TestUploadRejectsTraversalName(t *testing.T) {
	store := New(t.TempDir())
	if _, _, _, err := store.Upload(context.Background(), "../evil.pdf", bytes.NewReader([]byte("x"))); err == nil {
		t.Fatalf("expected error for traversal file name")
	}
}

func TestOpenRejectsTraversalRef(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatalf("expected error for traversal reference")
	}
	if _, err := store.Open(context.Background(), "/etc/passwd"); err == nil {
		t.Fatalf("expected error for absolute reference")
	}
}
