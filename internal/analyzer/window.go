package analyzer

import (
	"crypto/sha1"
	"os"
	"strings"
)

// Digest is the content-equality key for a window of normalized lines.
// SHA-1 is used purely for its fixed size and negligible collision rate on
// source text, not for any adversarial-input property.
type Digest [sha1.Size]byte

// Window is one hashable block: the digest of W joined normalized lines and
// the 1-based line number where the block starts in the raw file.
type Window struct {
	Digest    Digest
	StartLine int
}

// ScanFile reads a file and returns its windows. A file that cannot be read
// contributes no windows; the scan of the rest of the corpus continues.
func ScanFile(path string, windowSize, minChars int) []Window {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return ScanWindows(strings.Split(string(content), "\n"), windowSize, minChars)
}

// ScanWindows slides a fixed-size window over the normalized lines and
// returns a Window for every position where all lines survived
// normalization and the joined block meets the minimum length.
//
// Each position re-joins its lines rather than rolling the previous hash
// forward; at source-repository sizes the simpler form wins.
func ScanWindows(lines []string, windowSize, minChars int) []Window {
	normalized := make([]string, len(lines))
	for i, line := range lines {
		normalized[i] = NormalizeLine(line)
	}

	var windows []Window
	for i := 0; i+windowSize <= len(normalized); i++ {
		block := normalized[i : i+windowSize]
		if hasEmptyLine(block) {
			continue
		}
		joined := strings.Join(block, "\n")
		if len(joined) < minChars {
			continue
		}
		windows = append(windows, Window{
			Digest:    sha1.Sum([]byte(joined)),
			StartLine: i + 1,
		})
	}
	return windows
}

func hasEmptyLine(block []string) bool {
	for _, line := range block {
		if line == "" {
			return true
		}
	}
	return false
}
