package utils

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"

	"hms/internal/status"
)

// NormalizeImage decodes an uploaded image, shrinks it to at most maxWidth
// pixels wide (never upscaling) and re-encodes it as JPEG at the given
// quality. Payment proofs and payment QR photos arrive straight from phone
// cameras, so this routinely cuts uploads by an order of magnitude.
func NormalizeImage(r io.Reader, maxWidth, quality int) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, status.ErrNotImage
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
