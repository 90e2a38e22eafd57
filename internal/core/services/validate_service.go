package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
)

// hashPrefixLen is how many hex characters of the digest are reported
const hashPrefixLen = 10

type ValidateService struct{}

func NewValidateService() *ValidateService {
	return &ValidateService{}
}

// Validate inspects and fingerprints the image at path.
// Failures are reported inside the result, never returned.
func (s *ValidateService) Validate(ctx context.Context, path string) domain.ValidationResult {
	if err := ctx.Err(); err != nil {
		return domain.NewValidationError(path, err)
	}

	// 1. Existence
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewValidationError(path, domain.ErrFileNotExist)
		}
		return domain.NewValidationError(path, err)
	}
	if info.IsDir() {
		return domain.NewValidationError(path, domain.ErrIsDirectory)
	}

	// 2. Header metadata
	cfg, format, err := decodeConfig(path)
	if err != nil {
		return domain.NewValidationError(path, err)
	}

	// 3. Content hash over the raw bytes
	hash, err := HashFile(path)
	if err != nil {
		return domain.NewValidationError(path, err)
	}

	return domain.NewValidationSuccess(
		path,
		strings.ToUpper(format),
		domain.Dimensions{Width: cfg.Width, Height: cfg.Height},
		ColorMode(cfg.ColorModel),
		hash[:hashPrefixLen],
	)
}

func decodeConfig(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("cannot identify image file %q: %w", path, err)
	}
	return cfg, format, nil
}

// HashFile returns the hex MD5 digest of the file contents
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := md5.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ColorMode names a decoder color model the way imaging tools usually
// report pixel modes (RGB, RGBA, L, P...).
func ColorMode(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "P"
	}

	switch m {
	case color.RGBAModel, color.RGBA64Model, color.YCbCrModel:
		return "RGB"
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel:
		return "RGBA"
	case color.GrayModel:
		return "L"
	case color.Gray16Model:
		return "I;16"
	case color.CMYKModel:
		return "CMYK"
	case color.AlphaModel, color.Alpha16Model:
		return "A"
	default:
		return "RGB"
	}
}
