package jinni

import (
	"bufio"
	"os"
	"strings"
	"unicode/utf8"
)

// ContextFilename is the per-directory rule file jinni looks for,
// alongside .gitignore, when composing a directory's effective spec.
const ContextFilename = ".contextfiles"

// GitignoreFilename is the standard git exclusion file jinni also
// honors when composing a directory's effective spec.
const GitignoreFilename = ".gitignore"

// RuleSourceKind tags where a RuleLayer's patterns came from.
type RuleSourceKind int

const (
	SourceDefaults RuleSourceKind = iota
	SourceGitignore
	SourceContextfile
	SourceOverride
)

func (k RuleSourceKind) String() string {
	switch k {
	case SourceDefaults:
		return "defaults"
	case SourceGitignore:
		return "gitignore"
	case SourceContextfile:
		return "contextfile"
	case SourceOverride:
		return "override"
	default:
		return "unknown"
	}
}

// RuleLayer is an ordered sequence of patterns drawn from one rule
// source, anchored at one directory. Anchor is expressed relative to
// the walk target, using forward slashes and a trailing slash for
// non-root anchors (e.g. "src/", or "" for the walk target itself).
type RuleLayer struct {
	Source   RuleSourceKind
	Anchor   string
	Patterns []*Pattern
}

// DefaultPatterns is the built-in exclusion layer applied whenever no
// override rules are active. This list is authoritative per the
// specification and must be reproduced verbatim.
var DefaultPatterns = []string{
	".*",
	".git/",
	".hg/",
	".svn/",
	".idea/",
	".vscode/",
	"node_modules/",
	"venv/",
	".venv/",
	"__pycache__/",
	"dist/",
	"build/",
	"target/",
	"out/",
	"bin/",
	"obj/",
	"*.egg-info/",
	"*.log",
	"log.*",
	"*.bak",
	"*.tmp",
	"*.temp",
	"*.swp",
	"*~",
}

// LoadPatternLines reads raw pattern lines from an in-memory list,
// stripping comment lines (leading '#') and blank/whitespace-only
// lines. Whitespace inside a surviving pattern line is preserved.
func LoadPatternLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// LoadPatternFile reads an explicitly named rule file (used for
// override rule sources) and returns its cleaned pattern lines. It
// fails with *RuleReadError if the file cannot be opened or is not
// valid UTF-8; this is the only case in which a rule read failure is
// fatal (a .gitignore/.contextfiles missing during a directory walk
// is never an error — see LoadDiscoveredRuleFile).
func LoadPatternFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RuleReadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &RuleReadError{Path: path, Err: errNotUTF8}
	}
	return LoadPatternLines(splitLines(string(data))), nil
}

// LoadDiscoveredRuleFile reads a .gitignore or .contextfiles file
// discovered during a walk. A missing file silently contributes zero
// patterns; this is never an error.
func LoadDiscoveredRuleFile(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return LoadPatternLines(lines)
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

var errNotUTF8 = &notUTF8Error{}

type notUTF8Error struct{}

func (*notUTF8Error) Error() string { return "file is not valid UTF-8" }
