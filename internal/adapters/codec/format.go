// Package codec reads wallet cohorts from files or streams and writes score
// reports in the supported encodings.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Supported encodings.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch format {
	case FormatYAML:
		return ".yaml"
	case FormatMsgpack:
		return ".msgpack"
	default:
		return ".json"
	}
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath infers the encoding from a file extension. Stdin ("-") and
// paths without an extension are treated as JSON.
func FormatFromPath(path string) (string, error) {
	if path == "" || path == "-" {
		return FormatJSON, nil
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return ParseFormat(ext)
}
