package app

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/crazy-max/x360dds/pkg/converter"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
)

// Entry is the outcome of a single texture conversion
type Entry struct {
	Source       string        `json:"source"`
	Output       string        `json:"output,omitempty"`
	FourCC       string        `json:"fourcc,omitempty"`
	Width        uint32        `json:"width,omitempty"`
	Height       uint32        `json:"height,omitempty"`
	Levels       int           `json:"levels"`
	Untiled      int           `json:"untiled"`
	Truncated    bool          `json:"truncated,omitempty"`
	Experimental bool          `json:"experimental,omitempty"`
	Digest       digest.Digest `json:"digest,omitempty"`
	Skipped      bool          `json:"skipped,omitempty"`
	Error        string        `json:"error,omitempty"`
}

func newEntry(src string, res *converter.Result) Entry {
	e := Entry{
		Source:       src,
		FourCC:       res.Format.FourCC,
		Width:        res.Header.Width,
		Height:       res.Header.Height,
		Levels:       len(res.Levels),
		Truncated:    res.Truncated,
		Experimental: res.Format.Experimental,
		Digest:       digest.FromBytes(res.Output),
	}
	for _, l := range res.Levels {
		if l.Untiled {
			e.Untiled++
		}
	}
	return e
}

// Report collects conversion entries from concurrent workers
type Report struct {
	mu      sync.Mutex
	entries []Entry
}

// Add records an entry
func (r *Report) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// Entries returns the entries sorted by source
func (r *Report) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Source < entries[j].Source
	})
	return entries
}

// Failed returns the number of failed conversions
func (r *Report) Failed() int {
	return r.count(func(e Entry) bool {
		return e.Error != "" && !e.Skipped
	})
}

// Skipped returns the number of textures never converted because the run
// was canceled
func (r *Report) Skipped() int {
	return r.count(func(e Entry) bool {
		return e.Skipped
	})
}

func (r *Report) count(fn func(Entry) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int
	for _, e := range r.entries {
		if fn(e) {
			n++
		}
	}
	return n
}

// Write writes the report as JSON to path
func (r *Report) Write(path string) error {
	dt, err := json.MarshalIndent(r.Entries(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode report")
	}
	return writeFile(path, append(dt, '\n'))
}
