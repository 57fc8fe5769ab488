package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skimsearch/skim/internal/match"
)

// captureSink records emitted matches and diagnostics.
type captureSink struct {
	mu      sync.Mutex
	matches []capturedMatch
	diags   []string
}

type capturedMatch struct {
	path   string
	offset int64
}

func (c *captureSink) Emit(path string, offset int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matches = append(c.matches, capturedMatch{path, offset})
}

func (c *captureSink) Diag(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, format)
}

func (c *captureSink) offsets() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, len(c.matches))
	for i, m := range c.matches {
		out[i] = m.offset
	}
	return out
}

func newScanner(t *testing.T, pattern string, mode match.CaseMode) (*Scanner, *captureSink) {
	t.Helper()
	m, err := match.New([]byte(pattern), mode)
	require.NoError(t, err)
	out := &captureSink{}
	return New(m, out), out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScan_OffsetsAscending(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "needle hay needle hay needle")

	sc, out := newScanner(t, "needle", match.CaseSensitive)
	sc.Scan(path)

	assert.Equal(t, []int64{0, 11, 22}, out.offsets())
	assert.Empty(t, out.diags)
}

func TestScan_OverlappingMatches(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "over.txt", "aaaa")

	sc, out := newScanner(t, "aa", match.CaseSensitive)
	sc.Scan(path)

	assert.Equal(t, []int64{0, 1, 2}, out.offsets())
}

func TestScan_CaseFold(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fold.txt", "xxabcxx ABC")

	sc, out := newScanner(t, "AbC", match.CaseFold)
	sc.Scan(path)
	assert.Equal(t, []int64{2, 8}, out.offsets())

	sc, out = newScanner(t, "AbC", match.CaseSensitive)
	sc.Scan(path)
	assert.Empty(t, out.offsets())
}

func TestScan_EmptyFileIsSilent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty", "")

	sc, out := newScanner(t, "x", match.CaseSensitive)
	sc.Scan(path)

	assert.Empty(t, out.offsets())
	assert.Empty(t, out.diags, "empty files skip without a diagnostic")
}

func TestScan_FileShorterThanPattern(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tiny", "ab")

	sc, out := newScanner(t, "abcdef", match.CaseSensitive)
	sc.Scan(path)

	assert.Empty(t, out.offsets())
	assert.Empty(t, out.diags)
}

func TestScan_MissingFileIsSoftFailure(t *testing.T) {
	sc, out := newScanner(t, "x", match.CaseSensitive)
	sc.Scan(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.Empty(t, out.offsets())
	assert.Len(t, out.diags, 1)
}

func TestScan_UnreadableFileIsSoftFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced the same way on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("running as root; permission checks are bypassed")
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "secret", "needle")
	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

	sc, out := newScanner(t, "needle", match.CaseSensitive)
	sc.Scan(path)

	assert.Empty(t, out.offsets())
	assert.Len(t, out.diags, 1)
}

func TestScan_MatchAtEndOfFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "end.txt", "prefix-needle")

	sc, out := newScanner(t, "needle", match.CaseSensitive)
	sc.Scan(path)

	assert.Equal(t, []int64{7}, out.offsets())
}
