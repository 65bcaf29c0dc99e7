package mailparse

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/rcbc-digital/enquiry-mail/internal/oplog"
)

// Image resizing defaults, applied when the corresponding config value is
// zero.
const (
	DefaultMaxImageSizeMB    = 2
	DefaultMaxImageDimension = 2048
	DefaultJPEGQuality       = 85
)

// ImageResizer bounds attachment images by byte size and pixel dimensions.
// It is a pure byte-in/byte-out transform with no filesystem access.
type ImageResizer struct {
	maxSizeBytes int
	maxDimension int
	quality      int
	logger       *slog.Logger
	ops          *oplog.FileOperations
}

// NewImageResizer builds a resizer. Zero values select the defaults; ops may
// be nil.
func NewImageResizer(maxSizeMB, maxDimension, quality int, logger *slog.Logger, ops *oplog.FileOperations) *ImageResizer {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxImageSizeMB
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxImageDimension
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	return &ImageResizer{
		maxSizeBytes: maxSizeMB * 1024 * 1024,
		maxDimension: maxDimension,
		quality:      quality,
		logger:       logger,
		ops:          ops,
	}
}

// Resize returns the image bytes bounded by the configured limits, whether a
// resize happened, and the resulting byte count. Inputs at or under the size
// threshold pass through untouched. It never fails: any decode or encode
// problem returns the original bytes with wasResized false.
func (r *ImageResizer) Resize(name string, data []byte) (out []byte, wasResized bool, newSize int) {
	originalSize := len(data)
	if originalSize <= r.maxSizeBytes {
		return data, false, originalSize
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("image decode failed, keeping original bytes",
				slog.String("file", name),
				slog.Any("error", err))
		}
		return data, false, originalSize
	}

	// JPEG output cannot carry transparency.
	img = flattenOntoWhite(img)

	oldBounds := img.Bounds()
	if oldBounds.Dx() > r.maxDimension || oldBounds.Dy() > r.maxDimension {
		img = imaging.Fit(img, r.maxDimension, r.maxDimension, imaging.Lanczos)
		newBounds := img.Bounds()
		r.ops.LogResize(name, oldBounds.Dx(), oldBounds.Dy(), newBounds.Dx(), newBounds.Dy())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(r.quality)); err != nil {
		if r.logger != nil {
			r.logger.Warn("image encode failed, keeping original bytes",
				slog.String("file", name),
				slog.Any("error", err))
		}
		return data, false, originalSize
	}

	r.ops.LogCompression(name, originalSize, buf.Len())
	return buf.Bytes(), true, buf.Len()
}

// flattenOntoWhite composites the image onto a white background so that
// transparent regions do not turn black in JPEG output.
func flattenOntoWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}
