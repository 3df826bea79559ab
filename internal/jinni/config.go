package jinni

import (
	"os"
	"strconv"
)

// DefaultMaxSizeMB is the aggregate content budget applied when the
// caller passes no explicit limit and JINNI_MAX_SIZE_MB is unset.
const DefaultMaxSizeMB = 100

// MaxSizeEnvVar is the environment override for the default size
// limit, expressed in mebibytes (spec.md §6: "a single optional
// numeric override of the default size limit").
const MaxSizeEnvVar = "JINNI_MAX_SIZE_MB"

// ResolveSizeLimitBytes applies the precedence explicitPositive > env
// var > built-in default. explicitBytes <= 0 means "not supplied by
// the caller".
func ResolveSizeLimitBytes(explicitBytes int64) int64 {
	if explicitBytes > 0 {
		return explicitBytes
	}
	if raw := os.Getenv(MaxSizeEnvVar); raw != "" {
		if mb, err := strconv.ParseInt(raw, 10, 64); err == nil && mb > 0 {
			return mb * 1024 * 1024
		}
	}
	return DefaultMaxSizeMB * 1024 * 1024
}
