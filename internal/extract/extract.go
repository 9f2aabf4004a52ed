package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// Text returns the concatenated plain text of all pages of a PDF held in
// memory. Page breaks are insignificant. A scanned image-only PDF extracts
// successfully to an empty string; rejecting that is the caller's decision.
func Text(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if mime := sniffMime(data); mime != mimePDF {
		return "", fmt.Errorf("unsupported mime type: %s", mime)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf open: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("pdf text read: %w", err)
	}
	return buf.String(), nil
}

func sniffMime(data []byte) string {
	limit := len(data)
	if limit > 512 {
		limit = 512
	}
	return http.DetectContentType(data[:limit])
}
