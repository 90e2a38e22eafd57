// Package facedetect finds faces so analysis can crop to them.
package facedetect

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
)

const (
	// DefaultMinQuality filters weak cascade hits
	DefaultMinQuality = 10.0

	minFaceSize  = 20
	shiftFactor  = 0.1
	scaleFactor  = 1.1
	iouThreshold = 0.2
)

// Pigo detects faces with a pigo cascade
type Pigo struct {
	classifier *pigo.Pigo
	minQuality float32
}

// LoadPigo reads and unpacks the cascade file at path
func LoadPigo(path string) (*Pigo, error) {
	if path == "" {
		return nil, errors.New("no face cascade configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read face cascade: %w", err)
	}

	return NewPigo(data)
}

// NewPigo unpacks cascade bytes
func NewPigo(cascade []byte) (*Pigo, error) {
	p := pigo.NewPigo()
	classifier, err := p.Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack face cascade: %w", err)
	}

	return &Pigo{
		classifier: classifier,
		minQuality: DefaultMinQuality,
	}, nil
}

// Detect returns the bounds of the most confident face in img.
// found is false when no detection clears the quality threshold.
func (d *Pigo) Detect(ctx context.Context, img image.Image) (image.Rectangle, bool, error) {
	if err := ctx.Err(); err != nil {
		return image.Rectangle{}, false, err
	}

	// The clone starts at the origin; detections are mapped back onto img
	bounds := img.Bounds()
	src := imaging.Clone(img)
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()
	if cols == 0 || rows == 0 {
		return image.Rectangle{}, false, nil
	}

	maxSize := cols
	if rows < maxSize {
		maxSize = rows
	}

	params := pigo.CascadeParams{
		MinSize:     minFaceSize,
		MaxSize:     maxSize,
		ShiftFactor: shiftFactor,
		ScaleFactor: scaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(params, 0)
	dets = d.classifier.ClusterDetections(dets, iouThreshold)

	best, ok := bestDetection(dets, d.minQuality)
	if !ok {
		return image.Rectangle{}, false, nil
	}

	face := faceBounds(best, bounds)
	if face.Empty() {
		return image.Rectangle{}, false, nil
	}
	return face, true, nil
}

func bestDetection(dets []pigo.Detection, minQuality float32) (pigo.Detection, bool) {
	var best pigo.Detection
	found := false
	for _, det := range dets {
		if det.Q < minQuality {
			continue
		}
		if !found || det.Q > best.Q {
			best = det
			found = true
		}
	}
	return best, found
}

// faceBounds places a detection made on an origin-based copy inside bounds
func faceBounds(det pigo.Detection, bounds image.Rectangle) image.Rectangle {
	return detectionRect(det).Add(bounds.Min).Intersect(bounds)
}

// detectionRect converts a centre/scale detection into a square
func detectionRect(det pigo.Detection) image.Rectangle {
	half := det.Scale / 2
	return image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half)
}
