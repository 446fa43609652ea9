package driver

import (
	"fmt"
	"os"

	"cqasm/internal/source"
)

// ReadSource loads a file from disk in the form Parse/Analyze expect:
// UTF-8 without BOM and with LF line endings.
func ReadSource(path string) (string, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content, _, err := source.Normalize(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return string(content), nil
}
