package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Validation statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrFileNotExist is reported when the validated path does not name an existing file.
// Its text is the message callers see in the JSON payload.
var ErrFileNotExist = errors.New("file does not exist")

// ErrIsDirectory is reported when the validated path is a directory
var ErrIsDirectory = errors.New("path is a directory, not an image file")

// Dimensions holds pixel width and height. It serializes as a [width, height] array.
type Dimensions struct {
	Width  int
	Height int
}

// MarshalJSON encodes the dimensions as a two element array
func (d Dimensions) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{d.Width, d.Height})
}

// UnmarshalJSON decodes a [width, height] array
func (d *Dimensions) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("size must have exactly 2 elements, got %d", len(pair))
	}
	d.Width, d.Height = pair[0], pair[1]
	return nil
}

// ValidationResult is the report printed in validation mode.
//
// A failed result only carries Status, Message and Path. A successful one
// carries every image-derived field and no Message.
type ValidationResult struct {
	Status  string      `json:"status"`
	Format  string      `json:"format,omitempty"`
	Size    *Dimensions `json:"size,omitempty"`
	Mode    string      `json:"mode,omitempty"`
	Hash    string      `json:"hash,omitempty"`
	Path    string      `json:"path"`
	Message string      `json:"message,omitempty"`
}

// NewValidationSuccess builds a successful result
func NewValidationSuccess(path, format string, size Dimensions, mode, hash string) ValidationResult {
	return ValidationResult{
		Status: StatusSuccess,
		Format: format,
		Size:   &size,
		Mode:   mode,
		Hash:   hash,
		Path:   path,
	}
}

// NewValidationError builds a failed result from err
func NewValidationError(path string, err error) ValidationResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return ValidationResult{
		Status:  StatusError,
		Message: msg,
		Path:    path,
	}
}

// OK reports whether the validation succeeded
func (r ValidationResult) OK() bool {
	return r.Status == StatusSuccess
}
