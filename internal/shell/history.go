package shell

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// HistoryFileName is the fixed relative path history is persisted to.
const HistoryFileName = ".tash_history"

// historySink receives history entries for in-session navigation.
// *readline.Instance satisfies it.
type historySink interface {
	SaveHistory(content string) error
}

// HistoryStore owns the line history: loaded once at session start, saved
// once at session end. Single process, single session; no locking.
type HistoryStore struct {
	path    string
	entries []string
	sink    historySink
}

// NewHistoryStore returns a store persisting to path, or to the fixed
// default when path is empty.
func NewHistoryStore(path string) *HistoryStore {
	if path == "" {
		path = HistoryFileName
	}
	return &HistoryStore{path: path}
}

// Load reads the history file line by line, skipping empty lines, and feeds
// each entry to sink in file order. A missing file is not an error.
func (h *HistoryStore) Load(sink historySink) error {
	h.sink = sink

	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\n")
		if line == "" {
			continue
		}
		h.entries = append(h.entries, line)
		if h.sink != nil {
			_ = h.sink.SaveHistory(line)
		}
	}
	return scanner.Err()
}

// Add appends one non-empty entry and forwards it to the line editor's
// in-memory history.
func (h *HistoryStore) Add(line string) {
	if line == "" {
		return
	}
	h.entries = append(h.entries, line)
	if h.sink != nil {
		_ = h.sink.SaveHistory(line)
	}
}

// Entries returns the in-memory history in order of original entry.
func (h *HistoryStore) Entries() []string {
	return h.entries
}

// Save writes every entry to the history file, one per line, overwriting
// any prior contents.
func (h *HistoryStore) Save() error {
	f, err := os.Create(h.path)
	if err != nil {
		return err
	}
	for _, line := range h.entries {
		if _, err := fmt.Fprintln(f, line); err != nil {
			_ = f.Close()
			return err
		}
	}
	return f.Close()
}
