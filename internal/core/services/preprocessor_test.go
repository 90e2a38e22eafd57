package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/kamal-hamza/emobridge/internal/core/ports/mocks"
)

func decodePrepared(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("prepared bytes are not a PNG: %v", err)
	}
	return img
}

func TestPreprocessor_Prepare_Grayscale48(t *testing.T) {
	path := writeImage(t, t.TempDir(), "face.png", opaqueRGBA(100, 60))
	pre := NewPreprocessor(48, true, nil)

	prepared, err := pre.Prepare(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prepared.MIMEType != "image/png" {
		t.Errorf("expected image/png, got %q", prepared.MIMEType)
	}
	if prepared.Source != path {
		t.Errorf("expected source %q, got %q", path, prepared.Source)
	}
	if prepared.Size.Width != 48 || prepared.Size.Height != 48 {
		t.Errorf("expected 48x48 size, got %+v", prepared.Size)
	}

	img := decodePrepared(t, prepared.Data)
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("expected 48x48 pixels, got %dx%d", b.Dx(), b.Dy())
	}
	if img.ColorModel() != color.GrayModel {
		t.Errorf("expected grayscale output, got %T", img)
	}
}

func TestPreprocessor_Prepare_KeepsColor(t *testing.T) {
	path := writeImage(t, t.TempDir(), "face.jpg", opaqueRGBA(80, 80))
	pre := NewPreprocessor(32, false, nil)

	prepared, err := pre.Prepare(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img := decodePrepared(t, prepared.Data)
	if img.ColorModel() == color.GrayModel {
		t.Error("expected color output when grayscale is off")
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("expected 32x32 pixels, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestPreprocessor_FaceCrop(t *testing.T) {
	path := writeImage(t, t.TempDir(), "face.png", opaqueRGBA(200, 100))

	tests := []struct {
		name     string
		detector *mocks.MockFaceDetector
	}{
		{"face found", &mocks.MockFaceDetector{Bounds: image.Rect(50, 10, 130, 90), Found: true}},
		{"no face", &mocks.MockFaceDetector{}},
		{"detector error", &mocks.MockFaceDetector{Err: errors.New("cascade exploded")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pre := NewPreprocessor(48, true, tt.detector)

			prepared, err := pre.Prepare(context.Background(), path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			img := decodePrepared(t, prepared.Data)
			if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
				t.Errorf("expected 48x48 pixels, got %dx%d", b.Dx(), b.Dy())
			}
		})
	}
}

func TestPreprocessor_FaceCropUsesDetectedRegion(t *testing.T) {
	path := writeImage(t, t.TempDir(), "face.png", splitImage(200, 100))
	face := &mocks.MockFaceDetector{Bounds: image.Rect(120, 10, 190, 90), Found: true}

	full, err := NewPreprocessor(48, true, nil).Prepare(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cropped, err := NewPreprocessor(48, true, face).Prepare(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bytes.Equal(full.Data, cropped.Data) {
		t.Fatal("face crop produced the same image as the full frame")
	}

	// The full frame keeps the black half
	fullImg := decodePrepared(t, full.Data).(*image.Gray)
	if y := fullImg.GrayAt(0, 24).Y; y > 10 {
		t.Errorf("expected dark left edge in full frame, got %d", y)
	}

	// The detected region lies entirely in the white half
	croppedImg := decodePrepared(t, cropped.Data).(*image.Gray)
	b := croppedImg.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if v := croppedImg.GrayAt(x, y).Y; v < 245 {
				t.Fatalf("pixel (%d,%d) = %d, expected only the white face region", x, y, v)
			}
		}
	}
}

func TestPreprocessor_Prepare_Errors(t *testing.T) {
	dir := t.TempDir()
	valid := writeImage(t, dir, "ok.png", opaqueRGBA(10, 10))

	tests := []struct {
		name string
		pre  *Preprocessor
		path string
	}{
		{"missing file", NewPreprocessor(48, true, nil), filepath.Join(dir, "missing.png")},
		{"zero size", NewPreprocessor(0, true, nil), valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.pre.Prepare(context.Background(), tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestToGray(t *testing.T) {
	src := opaqueRGBA(5, 3)
	gray := toGray(src)

	if b := gray.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Errorf("unexpected bounds %v", b)
	}
	if gray.Bounds().Min != (image.Point{}) {
		t.Errorf("expected origin at zero, got %v", gray.Bounds().Min)
	}
}
