package analyzer

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func occ(path string, line int) Occurrence {
	return Occurrence{Path: path, StartLine: line}
}

func TestBuildReportRanksBySize(t *testing.T) {
	groups := []Group{
		{Occurrences: []Occurrence{occ("a.go", 1), occ("b.go", 1)}},
		{Occurrences: []Occurrence{occ("c.go", 1), occ("d.go", 1), occ("e.go", 1)}},
	}

	report := BuildReport("/repo", 5, groups, 50)
	if report.TotalGroups != 2 {
		t.Fatalf("TotalGroups = %d, want 2", report.TotalGroups)
	}
	if report.Groups[0].Size() != 3 || report.Groups[1].Size() != 2 {
		t.Errorf("Groups not ordered by descending size: %v", report.Groups)
	}
}

func TestBuildReportTieBreakIsLexical(t *testing.T) {
	groups := []Group{
		{Occurrences: []Occurrence{occ("z.go", 1), occ("y.go", 1)}},
		{Occurrences: []Occurrence{occ("a.go", 9), occ("a.go", 2)}},
	}

	report := BuildReport("/repo", 4, groups, 50)
	if report.Groups[0].Occurrences[0].Path != "a.go" {
		t.Errorf("Tie-break put %s first, want a.go group", report.Groups[0].Occurrences[0].Path)
	}
	// Occurrences inside a group come back sorted by path then line.
	if report.Groups[0].Occurrences[0].StartLine != 2 {
		t.Errorf("Occurrences not sorted by line: %v", report.Groups[0].Occurrences)
	}
	if report.Groups[1].Occurrences[0].Path != "y.go" {
		t.Errorf("Occurrences not sorted by path: %v", report.Groups[1].Occurrences)
	}
}

func TestBuildReportTopCapsShownNotFound(t *testing.T) {
	var groups []Group
	for _, p := range []string{"a", "b", "c"} {
		groups = append(groups, Group{Occurrences: []Occurrence{occ(p+"1.go", 1), occ(p+"2.go", 1)}})
	}

	report := BuildReport("/repo", 6, groups, 2)
	if report.TotalGroups != 3 {
		t.Errorf("TotalGroups = %d, want 3 (top must not affect the count)", report.TotalGroups)
	}
	if len(report.Groups) != 2 {
		t.Errorf("Shown groups = %d, want 2", len(report.Groups))
	}
}

func TestReportWriteText(t *testing.T) {
	report := BuildReport("/repo", 2, []Group{
		{Occurrences: []Occurrence{occ("b.go", 3), occ("a.go", 1)}},
	}, 50)

	var sb strings.Builder
	if err := report.WriteText(&sb); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	want := "Scanned root: /repo\n" +
		"Duplicate groups: 1\n" +
		"\n" +
		"Group size: 2\n" +
		"- a.go:1\n" +
		"- b.go:3\n"
	if sb.String() != want {
		t.Errorf("WriteText output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestReportWriteTextNoDuplicates(t *testing.T) {
	report := BuildReport("/repo", 3, nil, 50)

	var sb strings.Builder
	if err := report.WriteText(&sb); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	want := "Scanned root: /repo\nDuplicate groups: 0\n"
	if sb.String() != want {
		t.Errorf("WriteText output = %q, want %q", sb.String(), want)
	}
}

func TestReportWriteYAML(t *testing.T) {
	report := BuildReport("/repo", 2, []Group{
		{Occurrences: []Occurrence{occ("a.go", 1), occ("b.go", 3)}},
	}, 50)

	var sb strings.Builder
	if err := report.WriteYAML(&sb); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	var decoded Report
	if err := yaml.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}
	if decoded.Root != "/repo" || decoded.TotalGroups != 1 || decoded.FilesScanned != 2 {
		t.Errorf("Round-tripped report = %+v", decoded)
	}
	if len(decoded.Groups) != 1 || decoded.Groups[0].Size() != 2 {
		t.Errorf("Round-tripped groups = %+v", decoded.Groups)
	}
}
