package jinni

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
	}
}

func extractPaths(t *testing.T, output string) []string {
	t.Helper()
	var paths []string
	for _, block := range strings.Split(output, "\n\n") {
		if block == "" {
			continue
		}
		firstLine := strings.SplitN(block, "\n", 2)[0]
		rel := strings.TrimPrefix(firstLine, "```path=")
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	return paths
}

// S1 — default exclusions.
func TestReadContext_DefaultExclusions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":                "print(1)\n",
		".git/config":         "junk\n",
		"node_modules/x.js":   "junk\n",
	})

	result, err := ReadContext(Request{ProjectRoot: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, extractPaths(t, result.Output))
}

// S2 — a nested .contextfiles pattern anchors to its own directory and
// cannot un-exclude the project's top-level .git.
func TestReadContext_ContextfileAnchoringDoesNotLeakUpward(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/config":          "junk\n",
		"src/app.py":           "print(1)\n",
		"src/.contextfiles":    ".git/\n",
	})

	result, err := ReadContext(Request{ProjectRoot: root, Targets: []string{filepath.Join(root, "src")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/app.py"}, extractPaths(t, result.Output))
}

// Override rules replace defaults entirely: dotfiles that defaults
// would exclude become included, and only the override pattern itself
// excludes anything.
func TestReadContext_OverrideRulesReplaceDefaults(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/config": "junk\n",
		"a.py":        "print(1)\n",
		"b.tmp":       "junk\n",
	})

	result, err := ReadContext(Request{
		ProjectRoot:   root,
		OverrideRules: []string{"*.tmp"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".git/config", "a.py"}, extractPaths(t, result.Output))
}

// S4 — negation precedence: a later, more specific negated pattern
// re-includes what a broad exclusion above it (and in defaults) ruled out.
func TestReadContext_NegationPrecedence(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.log":         "junk\n",
		"important.log": "keep me\n",
		".contextfiles": "*.log\n!important.log\n",
	})

	result, err := ReadContext(Request{ProjectRoot: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"important.log"}, extractPaths(t, result.Output))
}

// Layer composition applies every .gitignore layer (root down to the
// current directory) before any .contextfiles layer, rather than
// interleaving the two by depth. A nested .gitignore exclusion at
// sub/ and a root .gitignore exclusion both still lose to a root
// .contextfiles negation, because the whole .gitignore group precedes
// the whole .contextfiles group regardless of which was deeper.
func TestReadContext_GitignoreGroupPrecedesContextfileGroup(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.log":         "junk\n",
		"sub/b.log":     "junk\n",
		".gitignore":    "*.log\n",
		"sub/.gitignore": "*.log\n",
		".contextfiles": "!*.log\n",
	})

	result, err := ReadContext(Request{ProjectRoot: root})
	require.NoError(t, err)

	// The root .contextfiles negation (applied after the whole
	// .gitignore group, including sub/'s) re-includes both files: the
	// .contextfiles group is composed entirely after the .gitignore
	// group, so its root-anchored negation is the last match for
	// both, regardless of directory depth.
	assert.Equal(t, []string{"a.log", "sub/b.log"}, extractPaths(t, result.Output))
}

// S6 — list-only mode surfaces exactly the same paths as content mode.
func TestReadContext_ListOnlyParityWithContentMode(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":        "print(1)\n",
		"pkg/b.py":    "print(2)\n",
		".git/config": "junk\n",
	})

	content, err := ReadContext(Request{ProjectRoot: root})
	require.NoError(t, err)

	listed, err := ReadContext(Request{ProjectRoot: root, ListOnly: true})
	require.NoError(t, err)

	listedPaths := strings.Split(strings.TrimRight(listed.Output, "\n"), "\n")
	sort.Strings(listedPaths)

	assert.Equal(t, extractPaths(t, content.Output), listedPaths)
}

func TestReadContext_ExplicitFileTargetBypassesRules(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/config": "junk\n",
	})

	result, err := ReadContext(Request{
		ProjectRoot: root,
		Targets:     []string{filepath.Join(root, ".git", "config")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".git/config"}, extractPaths(t, result.Output))
}

func TestReadContext_DeduplicatesOverlappingTargets(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.py": "print(1)\n",
	})

	result, err := ReadContext(Request{
		ProjectRoot: root,
		Targets:     []string{root, filepath.Join(root, "src")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.py"}, extractPaths(t, result.Output))
}

func TestReadContext_OversizeRaisesDetailedDiagnostic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt": strings.Repeat("a", 600),
		"b.txt": strings.Repeat("b", 500),
	})

	_, err := ReadContext(Request{ProjectRoot: root, SizeLimitBytes: 1000})
	require.Error(t, err)

	var sizeErr *DetailedContextSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.EqualValues(t, 1000, sizeErr.LimitBytes)
	assert.Greater(t, sizeErr.ObservedBytes, sizeErr.LimitBytes)
	assert.NotEmpty(t, sizeErr.LargestFiles)
}

func TestReadContext_InvalidRoot(t *testing.T) {
	_, err := ReadContext(Request{ProjectRoot: filepath.Join(t.TempDir(), "does-not-exist")})
	require.Error(t, err)
	var rerr *InvalidRootError
	assert.ErrorAs(t, err, &rerr)
}

func TestReadContext_TargetOutsideRoot(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	writeTree(t, other, map[string]string{"x.py": "print(1)\n"})

	_, err := ReadContext(Request{ProjectRoot: root, Targets: []string{other}})
	require.Error(t, err)
	var terr *TargetOutsideRootError
	assert.ErrorAs(t, err, &terr)
}

func TestReadContext_RejectsEmbeddedNUL(t *testing.T) {
	root := t.TempDir()
	_, err := ReadContext(Request{ProjectRoot: root, Targets: []string{"a\x00b"}})
	require.Error(t, err)
	var rerr *InvalidRootError
	assert.ErrorAs(t, err, &rerr)
}

func TestReadContext_Determinism(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py": "print(1)\n",
		"b.py": "print(2)\n",
		"c.py": "print(3)\n",
	})

	first, err := ReadContext(Request{ProjectRoot: root})
	require.NoError(t, err)
	second, err := ReadContext(Request{ProjectRoot: root})
	require.NoError(t, err)

	assert.Equal(t, first.Output, second.Output)
}
