package analyzer

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Report is the final result of a scan: every duplicate group found, ranked
// and ready to render. TotalGroups counts all groups with two or more
// occurrences; Groups holds at most the configured top limit of them.
type Report struct {
	Root         string  `json:"root" yaml:"root"`
	FilesScanned int     `json:"files_scanned" yaml:"files_scanned"`
	TotalGroups  int     `json:"duplicate_groups" yaml:"duplicate_groups"`
	Groups       []Group `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// BuildReport ranks groups by descending unique-occurrence count and keeps
// at most top of them. Occurrences inside each group are sorted by path then
// line, and ties between equally sized groups are broken by comparing those
// sorted occurrence lists, so output is stable across runs.
func BuildReport(root string, filesScanned int, groups []Group, top int) Report {
	for i := range groups {
		sortOccurrences(groups[i].Occurrences)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Size() != groups[j].Size() {
			return groups[i].Size() > groups[j].Size()
		}
		return lessOccurrenceLists(groups[i].Occurrences, groups[j].Occurrences)
	})

	shown := groups
	if top >= 0 && len(shown) > top {
		shown = shown[:top]
	}

	return Report{
		Root:         root,
		FilesScanned: filesScanned,
		TotalGroups:  len(groups),
		Groups:       shown,
	}
}

func sortOccurrences(occurrences []Occurrence) {
	sort.Slice(occurrences, func(i, j int) bool {
		if occurrences[i].Path != occurrences[j].Path {
			return occurrences[i].Path < occurrences[j].Path
		}
		return occurrences[i].StartLine < occurrences[j].StartLine
	})
}

func lessOccurrenceLists(a, b []Occurrence) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Path != b[i].Path {
			return a[i].Path < b[i].Path
		}
		if a[i].StartLine != b[i].StartLine {
			return a[i].StartLine < b[i].StartLine
		}
	}
	return len(a) < len(b)
}

// WriteText renders the report in its plain-text form.
func (r Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Scanned root: %s\n", r.Root); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Duplicate groups: %d\n", r.TotalGroups); err != nil {
		return err
	}
	for _, group := range r.Groups {
		if _, err := fmt.Fprintf(w, "\nGroup size: %d\n", group.Size()); err != nil {
			return err
		}
		for _, occ := range group.Occurrences {
			if _, err := fmt.Fprintf(w, "- %s:%d\n", occ.Path, occ.StartLine); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteYAML renders the report as YAML for downstream tooling.
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}
