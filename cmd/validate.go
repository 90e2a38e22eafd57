package cmd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/kamal-hamza/emobridge/internal/core/services"
)

// runValidate prints the validation report as one JSON line.
// The report carries its own status, so a bad image is not a command error.
func runValidate(ctx context.Context, path string, stdout io.Writer) error {
	result := services.NewValidateService().Validate(ctx, path)
	return writeJSON(stdout, result)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
