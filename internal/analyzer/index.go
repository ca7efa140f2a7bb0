package analyzer

import "sync"

// Occurrence identifies one physical location of a window.
type Occurrence struct {
	Path      string `json:"path" yaml:"path"`
	StartLine int    `json:"start_line" yaml:"start_line"`
}

// Group is a set of distinct locations sharing one digest. Only groups with
// at least two unique occurrences are ever produced.
type Group struct {
	Occurrences []Occurrence `json:"occurrences" yaml:"occurrences"`
}

// Size returns the number of unique occurrences in the group.
func (g Group) Size() int {
	return len(g.Occurrences)
}

// Index accumulates windows from all scanned files, keyed by digest.
// Add may be called from concurrent per-file scanners; Groups must only be
// called after all additions are done.
type Index struct {
	mu      sync.Mutex
	byHash  map[Digest][]Occurrence
	windows int
}

// NewIndex creates an empty duplicate index.
func NewIndex() *Index {
	return &Index{byHash: make(map[Digest][]Occurrence)}
}

// Add records every window of one file under the given path.
func (idx *Index) Add(path string, windows []Window) {
	if len(windows) == 0 {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, w := range windows {
		idx.byHash[w.Digest] = append(idx.byHash[w.Digest], Occurrence{Path: path, StartLine: w.StartLine})
	}
	idx.windows += len(windows)
}

// WindowCount returns the total number of windows recorded.
func (idx *Index) WindowCount() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.windows
}

// Groups returns every digest observed at two or more unique locations.
// Occurrences are deduplicated by (path, startLine): the scanner emits at
// most one window per start line, so duplicates cannot occur in practice,
// but the invariant is enforced here rather than assumed. No ordering is
// imposed; ranking belongs to the report.
func (idx *Index) Groups() []Group {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var groups []Group
	for _, occurrences := range idx.byHash {
		if len(occurrences) < 2 {
			continue
		}
		unique := dedupOccurrences(occurrences)
		if len(unique) < 2 {
			continue
		}
		groups = append(groups, Group{Occurrences: unique})
	}
	return groups
}

func dedupOccurrences(occurrences []Occurrence) []Occurrence {
	seen := make(map[Occurrence]bool, len(occurrences))
	unique := make([]Occurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if !seen[occ] {
			seen[occ] = true
			unique = append(unique, occ)
		}
	}
	return unique
}
