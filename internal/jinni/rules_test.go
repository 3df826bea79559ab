package jinni

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPatternLines_StripsCommentsAndBlanks(t *testing.T) {
	lines := LoadPatternLines([]string{
		"*.log",
		"",
		"  ",
		"# a comment",
		"  # indented comment",
		"important.log ",
	})
	assert.Equal(t, []string{"*.log", "important.log "}, lines)
}

func TestLoadPatternFile_MissingFileIsFatal(t *testing.T) {
	_, err := LoadPatternFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	var rerr *RuleReadError
	assert.ErrorAs(t, err, &rerr)
}

func TestLoadPatternFile_InvalidUTF8IsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0o644))

	_, err := LoadPatternFile(path)
	require.Error(t, err)
	var rerr *RuleReadError
	assert.ErrorAs(t, err, &rerr)
}

func TestLoadPatternFile_ReadsCleanedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.txt")
	require.NoError(t, os.WriteFile(path, []byte("*.tmp\n# comment\n\nnode_modules/\n"), 0o644))

	lines, err := LoadPatternFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.tmp", "node_modules/"}, lines)
}

func TestLoadDiscoveredRuleFile_MissingFileIsSilent(t *testing.T) {
	lines := LoadDiscoveredRuleFile(filepath.Join(t.TempDir(), ".gitignore"))
	assert.Nil(t, lines)
}

func TestLoadDiscoveredRuleFile_ReadsCleanedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".contextfiles")
	require.NoError(t, os.WriteFile(path, []byte("!*.log\nimportant.log\n"), 0o644))

	lines := LoadDiscoveredRuleFile(path)
	assert.Equal(t, []string{"!*.log", "important.log"}, lines)
}

func TestDefaultPatterns_CoversCoreExclusions(t *testing.T) {
	for _, want := range []string{".*", ".git/", "node_modules/", "*.log", "*.bak"} {
		assert.Contains(t, DefaultPatterns, want)
	}
}
