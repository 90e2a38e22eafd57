package facedetect

import (
	"context"
	"image"
	"path/filepath"
	"testing"

	pigo "github.com/esimov/pigo/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPigo_Errors(t *testing.T) {
	_, err := LoadPigo("")
	assert.Error(t, err)

	_, err = LoadPigo(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read face cascade")
}

func TestBestDetection(t *testing.T) {
	dets := []pigo.Detection{
		{Row: 10, Col: 10, Scale: 20, Q: 5},
		{Row: 50, Col: 40, Scale: 30, Q: 22},
		{Row: 70, Col: 80, Scale: 24, Q: 15},
	}

	best, ok := bestDetection(dets, DefaultMinQuality)
	require.True(t, ok)
	assert.Equal(t, float32(22), best.Q)

	_, ok = bestDetection(dets[:1], DefaultMinQuality)
	assert.False(t, ok)

	_, ok = bestDetection(nil, DefaultMinQuality)
	assert.False(t, ok)
}

func TestDetectionRect(t *testing.T) {
	rect := detectionRect(pigo.Detection{Row: 50, Col: 40, Scale: 30})
	assert.Equal(t, image.Rect(25, 35, 55, 65), rect)
}

func TestFaceBounds(t *testing.T) {
	tests := []struct {
		name     string
		det      pigo.Detection
		bounds   image.Rectangle
		expected image.Rectangle
	}{
		{
			name:     "origin",
			det:      pigo.Detection{Row: 50, Col: 40, Scale: 30},
			bounds:   image.Rect(0, 0, 100, 100),
			expected: image.Rect(25, 35, 55, 65),
		},
		{
			name:     "offset image",
			det:      pigo.Detection{Row: 50, Col: 40, Scale: 30},
			bounds:   image.Rect(100, 200, 200, 300),
			expected: image.Rect(125, 235, 155, 265),
		},
		{
			name:     "clipped at edge",
			det:      pigo.Detection{Row: 10, Col: 95, Scale: 30},
			bounds:   image.Rect(0, 0, 100, 100),
			expected: image.Rect(80, 0, 100, 25),
		},
		{
			name:     "outside",
			det:      pigo.Detection{Row: 500, Col: 500, Scale: 10},
			bounds:   image.Rect(0, 0, 100, 100),
			expected: image.Rectangle{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := faceBounds(tt.det, tt.bounds)
			if tt.expected.Empty() {
				assert.True(t, got.Empty(), "expected empty rectangle, got %v", got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetect_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, found, err := (&Pigo{}).Detect(ctx, image.NewGray(image.Rect(0, 0, 10, 10)))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, found)
}

func TestDetect_EmptyImage(t *testing.T) {
	face, found, err := (&Pigo{}).Detect(context.Background(), image.NewGray(image.Rectangle{}))
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, face.Empty())
}

// TestDetect_Cascade runs the real cascade when one is dropped into testdata
func TestDetect_Cascade(t *testing.T) {
	cascade := filepath.Join("testdata", "facefinder")
	d, err := LoadPigo(cascade)
	if err != nil {
		t.Skip("no face cascade in testdata")
	}

	// A flat image has no face
	blank := image.NewGray(image.Rect(10, 10, 170, 130))
	face, found, err := d.Detect(context.Background(), blank)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, face.Empty())
}
