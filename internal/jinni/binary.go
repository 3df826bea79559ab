package jinni

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// binaryCheckChunkSize is the amount of the file's head read for the
// null-byte and printable-ratio fallback checks.
const binaryCheckChunkSize = 8192

// applicationTextMIMEs augments the primary "text/*" MIME check with
// a handful of "application/*" types that are text in practice.
var applicationTextMIMEs = map[string]bool{
	"application/json":              true,
	"application/xml":                true,
	"application/javascript":         true,
	"application/x-javascript":       true,
	"application/x-sh":               true,
	"application/x-yaml":             true,
	"application/toml":               true,
	"application/x-www-form-urlencoded": true,
}

// IsBinary classifies a file as binary via the three-stage cascade
// from spec.md §4.3, stopping at the first decisive stage. Read
// errors are treated as binary (safe exclusion).
func IsBinary(path string) bool {
	if guess := guessMIME(path); guess != "" {
		if strings.HasPrefix(guess, "text/") || applicationTextMIMEs[guess] {
			return false
		}
		if knownBinaryMIME(guess) {
			return true
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, binaryCheckChunkSize)
	n, readErr := f.Read(buf)
	if readErr != nil && n == 0 && !errors.Is(readErr, io.EOF) {
		return true
	}
	chunk := buf[:n]

	if bytes.IndexByte(chunk, 0) >= 0 {
		return true
	}

	if len(chunk) == 0 {
		return false
	}

	printable := 0
	for _, b := range chunk {
		if isPrintableOrWhitespace(b) {
			printable++
		}
	}
	ratio := float64(printable) / float64(len(chunk))
	return ratio < 0.85
}

func isPrintableOrWhitespace(b byte) bool {
	if b >= 0x20 && b <= 0x7E {
		return true
	}
	return b == '\t' || b == '\n' || b == '\r'
}

func guessMIME(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	guess := mime.TypeByExtension(ext)
	if guess == "" {
		return ""
	}
	if idx := strings.IndexByte(guess, ';'); idx >= 0 {
		guess = guess[:idx]
	}
	return strings.TrimSpace(guess)
}

// knownBinaryMIMEPrefixes are MIME top-level types that are
// unambiguously non-text regardless of subtype.
var knownBinaryMIMEPrefixes = []string{
	"image/", "audio/", "video/", "font/",
}

func knownBinaryMIME(mimeType string) bool {
	for _, prefix := range knownBinaryMIMEPrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	switch mimeType {
	case "application/octet-stream", "application/zip", "application/x-tar",
		"application/gzip", "application/pdf", "application/vnd.ms-excel",
		"application/msword", "application/x-executable", "application/wasm":
		return true
	}
	return false
}
