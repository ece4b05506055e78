package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// isJPEGData checks if the byte slice contains JPEG data by checking magic bytes
func isJPEGData(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	// JPEG magic bytes: FF D8
	return data[0] == 0xFF && data[1] == 0xD8
}

// isPNGData checks if the byte slice contains PNG data by checking magic bytes
func isPNGData(data []byte) bool {
	if len(data) < 8 {
		return false
	}
	return string(data[:8]) == "\x89PNG\r\n\x1a\n"
}

// SniffImageContentType returns the MIME type for supported snapshot
// formats, or an empty string when the bytes are not a supported image
func SniffImageContentType(data []byte) string {
	switch {
	case isJPEGData(data):
		return "image/jpeg"
	case isPNGData(data):
		return "image/png"
	default:
		return ""
	}
}

// ImageExtension maps a sniffed content type to a file extension
func ImageExtension(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	default:
		return "jpg"
	}
}

// BuildObjectKey derives the storage key for a snapshot from the
// account id, the capture timestamp, and a random suffix. Keys are
// never reused, so an overwrite cannot occur.
func BuildObjectKey(accountID string, at time.Time, contentType string) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s/%s-%s.%s",
		accountID,
		at.UTC().Format("20060102T150405Z"),
		suffix,
		ImageExtension(contentType),
	)
}
