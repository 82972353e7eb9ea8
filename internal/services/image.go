package services

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// Media uploads are decoded, downscaled and re-encoded before hitting object
// storage, so arbitrary file content never lands on the public bucket.
const (
	maxUploadBytes = 10 << 20 // refuse anything over 10MB before decoding
	maxImageWidth  = 1600
	jpegQuality    = 85
)

// ImageService validates and normalizes uploaded event media
type ImageService struct{}

// NewImageService creates a new image processing service
func NewImageService() *ImageService {
	return &ImageService{}
}

// Process reads an uploaded image, verifies it decodes, downscales anything
// wider than maxImageWidth and re-encodes it. PNGs stay PNG (to preserve
// transparency); everything else becomes JPEG.
func (s *ImageService) Process(reader io.Reader) (io.Reader, string, int64, error) {
	raw, err := io.ReadAll(io.LimitReader(reader, maxUploadBytes+1))
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(raw) > maxUploadBytes {
		return nil, "", 0, fmt.Errorf("image exceeds %d byte limit", maxUploadBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", 0, fmt.Errorf("unsupported or corrupt image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	contentType := "image/jpeg"
	if format == "png" {
		contentType = "image/png"
		err = imaging.Encode(&buf, img, imaging.PNG)
	} else {
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	}
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to encode image: %w", err)
	}

	return bytes.NewReader(buf.Bytes()), contentType, int64(buf.Len()), nil
}
