package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	saved []string
}

func (r *recordingSink) SaveHistory(content string) error {
	r.saved = append(r.saved, content)
	return nil
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	h := NewHistoryStore(path)
	require.NoError(t, h.Load(nil))
	h.Add("foo")
	h.Add("bar")
	require.NoError(t, h.Save())

	fresh := NewHistoryStore(path)
	sink := &recordingSink{}
	require.NoError(t, fresh.Load(sink))
	assert.Equal(t, []string{"foo", "bar"}, fresh.Entries())
	assert.Equal(t, []string{"foo", "bar"}, sink.saved, "entries feed the line editor in file order")
}

func TestHistoryLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("foo\n\n\nbar\n\n"), 0644))

	h := NewHistoryStore(path)
	require.NoError(t, h.Load(nil))
	assert.Equal(t, []string{"foo", "bar"}, h.Entries())
}

func TestHistoryAddIgnoresEmpty(t *testing.T) {
	h := NewHistoryStore(filepath.Join(t.TempDir(), "history"))
	h.Add("")
	h.Add("cmd")
	assert.Equal(t, []string{"cmd"}, h.Entries())
}

func TestHistorySaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("stale\nolder\nlines\n"), 0644))

	h := NewHistoryStore(path)
	h.Add("only")
	require.NoError(t, h.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "only\n", string(data))
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := NewHistoryStore(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, h.Load(nil))
	assert.Empty(t, h.Entries())
}
