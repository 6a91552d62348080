package attachment_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdulhadi/ustaad/internal/adapters/attachment"
	"github.com/abdulhadi/ustaad/internal/domain"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestReadAsDataURIDetectsPNG(t *testing.T) {
	r := attachment.NewReader()
	path := writeTemp(t, "homework.png", pngHeader)

	got, err := r.ReadAsDataURI(path)
	if err != nil {
		t.Fatalf("ReadAsDataURI failed: %v", err)
	}

	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Fatalf("expected a png data URI, got %q", got)
	}

	payload := domain.ParseDataURI(got)
	raw, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if string(raw) != string(pngHeader) {
		t.Fatal("round-tripped bytes do not match the file")
	}
}

func TestReadAsDataURIFallsBackToJPEG(t *testing.T) {
	r := attachment.NewReader()
	path := writeTemp(t, "notes.txt", []byte("plain text, not an image"))

	got, err := r.ReadAsDataURI(path)
	if err != nil {
		t.Fatalf("ReadAsDataURI failed: %v", err)
	}
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Fatalf("non-image content falls back to image/jpeg, got %q", got)
	}
}

func TestReadAsDataURIErrors(t *testing.T) {
	r := attachment.NewReader()

	if _, err := r.ReadAsDataURI(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	empty := writeTemp(t, "empty.jpg", nil)
	if _, err := r.ReadAsDataURI(empty); err == nil {
		t.Fatal("expected an error for an empty file")
	}
}

func TestParseDataURI(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want domain.ImagePayload
	}{
		{"full uri", "data:image/png;base64,QUJD", domain.ImagePayload{MIMEType: "image/png", Data: "QUJD"}},
		{"no prefix", "QUJD", domain.ImagePayload{MIMEType: "image/jpeg", Data: "QUJD"}},
		{"missing mime", "data:;base64,QUJD", domain.ImagePayload{MIMEType: "image/jpeg", Data: "QUJD"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.ParseDataURI(tc.in); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
