package domain

import "encoding/base64"

// PreparedImage is an image already converted to a classifier's input shape
type PreparedImage struct {
	Data     []byte // encoded image bytes
	MIMEType string
	Size     Dimensions
	Source   string // original file path
}

// Base64 returns the encoded bytes as standard base64
func (p PreparedImage) Base64() string {
	return base64.StdEncoding.EncodeToString(p.Data)
}

// DataURL returns the image as a data: URL
func (p PreparedImage) DataURL() string {
	return "data:" + p.MIMEType + ";base64," + p.Base64()
}
