package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
	"github.com/kamal-hamza/emobridge/internal/core/ports"
	"github.com/kamal-hamza/emobridge/pkg/log"
)

// Preprocessor turns an image file into a classifier's fixed input shape
type Preprocessor struct {
	size      int
	grayscale bool
	faces     ports.FaceDetector
	resampler imaging.ResampleFilter
}

// NewPreprocessor creates a preprocessor producing size x size images.
// faces may be nil, in which case the whole frame is used.
func NewPreprocessor(size int, grayscale bool, faces ports.FaceDetector) *Preprocessor {
	return &Preprocessor{
		size:      size,
		grayscale: grayscale,
		faces:     faces,
		resampler: imaging.Lanczos,
	}
}

// Prepare loads, transforms and encodes the image at path
func (p *Preprocessor) Prepare(ctx context.Context, path string) (domain.PreparedImage, error) {
	if p.size <= 0 {
		return domain.PreparedImage{}, fmt.Errorf("invalid input size %d", p.size)
	}

	// 1. Load, honoring EXIF orientation
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return domain.PreparedImage{}, fmt.Errorf("failed to load image: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return domain.PreparedImage{}, err
	}

	// 2. Shape
	img, err := p.Transform(ctx, src)
	if err != nil {
		return domain.PreparedImage{}, err
	}

	// 3. Encode
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return domain.PreparedImage{}, fmt.Errorf("encoding image: %w", err)
	}

	return domain.PreparedImage{
		Data:     buf.Bytes(),
		MIMEType: "image/png",
		Size:     domain.Dimensions{Width: p.size, Height: p.size},
		Source:   path,
	}, nil
}

// Transform crops to the detected face (when a detector is set), resizes
// to the square input size and optionally drops color.
func (p *Preprocessor) Transform(ctx context.Context, src image.Image) (image.Image, error) {
	img := src

	if p.faces != nil {
		bounds, found, err := p.faces.Detect(ctx, src)
		switch {
		case err != nil:
			// Detection is an enhancement, the full frame is still usable
			log.Printf("face detection failed, using full frame: %v", err)
		case found && !bounds.Empty():
			img = imaging.Crop(src, bounds)
			log.Debugf("cropped to face at %v", bounds)
		default:
			log.Debugf("no face found, using full frame")
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resized := imaging.Resize(img, p.size, p.size, p.resampler)

	if !p.grayscale {
		return resized, nil
	}
	return toGray(resized), nil
}

// toGray converts to a single channel image so encoders emit real grayscale
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}
