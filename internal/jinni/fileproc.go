package jinni

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// EntryRecord is an included item ready for the File Processor: its
// absolute path, its project-root-relative output path, and its raw
// size.
type EntryRecord struct {
	AbsPath string
	RelPath string
	Size    int64
}

// ProcessedFile is the result of processing one EntryRecord.
type ProcessedFile struct {
	RelPath string
	Block   string // content-mode fenced block, or the list-only line
	Bytes   int64  // raw bytes counted toward the SizeLedger
}

// decodeBytes attempts UTF-8, then CP-1252, then Latin-1, returning
// the first successful decode. Latin-1 always succeeds (every byte
// value is a valid Latin-1 code point), so this never fails outright;
// a read error upstream is the only failure mode callers need handle.
func decodeBytes(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	// CP-1252 remaps the 0x80-0x9F range to punctuation (smart quotes,
	// em-dash, ellipsis) instead of the C1 control codes Latin-1 uses
	// there; try it first so those bytes decode to something legible.
	if decoded, ok := decodeWithCharmap(raw, charmap.Windows1252); ok {
		return decoded
	}

	// Latin-1 (ISO-8859-1): every byte maps directly to the Unicode
	// code point of the same value, so this never fails.
	return decodeLatin1(raw)
}

func decodeWithCharmap(raw []byte, cm *charmap.Charmap) (string, bool) {
	var b strings.Builder
	b.Grow(len(raw))
	for _, by := range raw {
		r := cm.DecodeByte(by)
		if r == utf8.RuneError {
			return "", false
		}
		b.WriteRune(r)
	}
	return b.String(), true
}

func decodeLatin1(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, by := range raw {
		b.WriteRune(rune(by))
	}
	return b.String()
}

// ProcessFile reads an included file and renders it per mode.
// In content mode it returns a fenced `path=<rel>` block. In
// list-only mode it returns just the relative path line. The
// SizeLedger's largest-files tracker is updated regardless of mode
// (list-only content contributes zero bytes to the aggregate budget,
// but its raw size still matters for the oversize diagnostic).
func ProcessFile(entry EntryRecord, listOnly bool, includeSizeInList bool, ledger *SizeLedger) (*ProcessedFile, error) {
	ledger.RecordSeen(entry.RelPath, entry.Size)

	if listOnly {
		line := entry.RelPath
		if includeSizeInList {
			line = fmt.Sprintf("%d\t%s", entry.Size, entry.RelPath)
		}
		return &ProcessedFile{RelPath: entry.RelPath, Block: line, Bytes: 0}, nil
	}

	raw, err := os.ReadFile(entry.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", entry.AbsPath, err)
	}

	content := decodeBytes(raw)
	block := "```path=" + entry.RelPath + "\n" + content
	if !strings.HasSuffix(content, "\n") {
		block += "\n"
	}
	block += "```"

	return &ProcessedFile{
		RelPath: entry.RelPath,
		Block:   block,
		Bytes:   int64(len(raw)),
	}, nil
}
