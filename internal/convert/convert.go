package convert

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"path"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// FirstPagePNG rasterizes the first page of a PDF held in memory and returns
// it PNG-encoded, together with the source's logical name with its extension
// replaced by .png. Rendering-engine failure, a zero-page document, and
// encoding failure all surface as errors for the caller to map to a single
// conversion-failed outcome.
func FirstPagePNG(ctx context.Context, fileName string, data []byte) (string, []byte, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", nil, fmt.Errorf("pdf render open: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return "", nil, fmt.Errorf("pdf has no pages")
	}

	img, err := doc.Image(0)
	if err != nil {
		return "", nil, fmt.Errorf("pdf render page 0: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", nil, fmt.Errorf("png encode: %w", err)
	}

	return PNGName(fileName), buf.Bytes(), nil
}

// PNGName maps a source file name to its preview image name.
func PNGName(fileName string) string {
	ext := path.Ext(fileName)
	if ext == "" {
		return fileName + ".png"
	}
	return strings.TrimSuffix(fileName, ext) + ".png"
}
