package manifest

import (
	"strconv"
	"strings"

	"github.com/proc-tools/appman/pkg/errors"
)

const (
	kilobyte uint64 = 1024
	megabyte        = 1024 * kilobyte
	gigabyte        = 1024 * megabyte
)

// ParseMemoryLimit parses supervisor memory limits like "512M", "1G", "200K"
// or a plain byte count. An optional trailing "B" is accepted ("512MB").
func ParseMemoryLimit(s string) (uint64, error) {
	if s == "" {
		return 0, errors.NewValidationError("memory limit cannot be empty", nil)
	}

	value := strings.ToUpper(strings.TrimSpace(s))
	value = strings.TrimSuffix(value, "B")

	multiplier := uint64(1)
	switch {
	case strings.HasSuffix(value, "K"):
		multiplier = kilobyte
		value = strings.TrimSuffix(value, "K")
	case strings.HasSuffix(value, "M"):
		multiplier = megabyte
		value = strings.TrimSuffix(value, "M")
	case strings.HasSuffix(value, "G"):
		multiplier = gigabyte
		value = strings.TrimSuffix(value, "G")
	}

	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("invalid memory limit: "+s, err)
	}
	if n == 0 {
		return 0, errors.NewValidationError("memory limit must be positive: "+s, nil)
	}

	return n * multiplier, nil
}

// FormatMemoryLimit renders a byte count in the shortest exact unit
func FormatMemoryLimit(bytes uint64) string {
	switch {
	case bytes >= gigabyte && bytes%gigabyte == 0:
		return strconv.FormatUint(bytes/gigabyte, 10) + "G"
	case bytes >= megabyte && bytes%megabyte == 0:
		return strconv.FormatUint(bytes/megabyte, 10) + "M"
	case bytes >= kilobyte && bytes%kilobyte == 0:
		return strconv.FormatUint(bytes/kilobyte, 10) + "K"
	default:
		return strconv.FormatUint(bytes, 10)
	}
}
