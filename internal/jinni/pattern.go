package jinni

import (
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Decision is the three-state outcome of classifying a path against
// an EffectiveSpec.
type Decision int

const (
	Unmatched Decision = iota
	Included
	Excluded
)

// Pattern is a single compiled gitignore-style rule line. Wildmatch
// and anchoring semantics (*, **, ?, character classes, a leading '/')
// are delegated to a single-line go-gitignore matcher compiled from
// the pattern text with negation stripped but the leading '/' left
// intact; Pattern itself tracks the negation and directory-only flags
// so the composing EffectiveSpec can implement last-match-wins across
// layers, which a single go-gitignore instance cannot do once patterns
// are drawn from multiple anchor directories.
type Pattern struct {
	Raw      string
	Negate   bool
	DirOnly  bool
	Anchored bool
	matcher  *gitignore.GitIgnore
}

// CompilePattern parses one raw pattern line (as loaded by
// LoadPatternLines) into a Pattern ready for matching.
func CompilePattern(raw string) *Pattern {
	line := raw
	negate := false
	switch {
	case strings.HasPrefix(line, "\\!"):
		line = "!" + line[2:]
	case strings.HasPrefix(line, "!"):
		negate = true
		line = line[1:]
	}

	anchored := strings.HasPrefix(line, "/")
	dirOnly := strings.HasSuffix(line, "/")

	// go-gitignore's own parser (getPatternFromLine) decides anchoring
	// solely from a leading '/' on the string it receives, so that
	// prefix must survive into the compiled matcher rather than being
	// stripped here. Stripping it would make every pattern compile as
	// unanchored, matching at any depth regardless of the leading '/'.
	return &Pattern{
		Raw:      raw,
		Negate:   negate,
		DirOnly:  dirOnly,
		Anchored: anchored,
		matcher:  gitignore.CompileIgnoreLines(line),
	}
}

// Matches reports whether relPath (forward-slash, relative to the
// pattern's anchor directory) matches this pattern's glob, ignoring
// negation (negation is interpreted by the caller when folding
// pattern results into a Decision).
func (p *Pattern) Matches(relPath string, isDir bool) bool {
	if p.DirOnly && !isDir {
		return false
	}
	if p.matcher == nil {
		return false
	}
	candidate := relPath
	if isDir && !strings.HasSuffix(candidate, "/") {
		candidate += "/"
	}
	return p.matcher.MatchesPath(candidate)
}

// EffectiveSpec is the compiled matcher for one directory visit,
// composed of every RuleLayer in scope for that directory (in
// composition order). It answers Classify(path) per spec.md §4.2:
// the last matching pattern across all layers, in order, determines
// the outcome; negation flips Excluded into Included; no match at all
// is Unmatched.
type EffectiveSpec struct {
	layers []RuleLayer
}

// NewEffectiveSpec compiles an EffectiveSpec from ordered layers.
func NewEffectiveSpec(layers []RuleLayer) *EffectiveSpec {
	return &EffectiveSpec{layers: layers}
}

// Classify decides the outcome for relPath (forward-slash, relative
// to the walk target that anchors this spec's layers).
func (s *EffectiveSpec) Classify(relPath string, isDir bool) Decision {
	decision := Unmatched
	for _, layer := range s.layers {
		local, ok := stripAnchor(relPath, layer.Anchor)
		if !ok {
			continue
		}
		for _, p := range layer.Patterns {
			if p.Matches(local, isDir) {
				if p.Negate {
					decision = Included
				} else {
					decision = Excluded
				}
			}
		}
	}
	return decision
}

// stripAnchor removes a layer's anchor prefix from a walk-target
// relative path, returning ok=false if the path does not fall under
// that anchor (which should not happen given how layers are built,
// but is checked defensively).
func stripAnchor(relPath, anchor string) (string, bool) {
	if anchor == "" {
		return relPath, true
	}
	if relPath == strings.TrimSuffix(anchor, "/") {
		return "", true
	}
	if strings.HasPrefix(relPath, anchor) {
		return relPath[len(anchor):], true
	}
	return "", false
}
