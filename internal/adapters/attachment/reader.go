// Package attachment converts user-selected files into the data-URI
// encoded form carried by student turns.
package attachment

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Reader implements domain.AttachmentReader against the local
// filesystem.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadAsDataURI reads the file and returns data:<mime>;base64,<payload>.
// The MIME type is sniffed from the file contents; unrecognized content
// falls back to image/jpeg, matching what the service tolerates.
func (r *Reader) ReadAsDataURI(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading attachment: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("attachment %s is empty", path)
	}

	mimeType := http.DetectContentType(raw)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/jpeg"
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
