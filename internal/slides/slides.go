// Package slides discovers the ordered list of slide directories inside
// a staged deck.
package slides

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/alnah/go-webslider2pdf/internal/fileutil"
)

// Dir is the fixed slide container at the staging root.
const Dir = "slides"

// IndexFile marks a directory as a renderable slide in fallback mode.
const IndexFile = "index.html"

var allDigits = regexp.MustCompile(`^[0-9]+$`)

// Enumerate returns slide directory names under <stagedDir>/slides.
//
// Primary convention: all-digit directory names, ascending by numeric
// value. Fallback (only when the primary yields nothing): directories
// containing an index.html, in lexicographic order. Listing errors
// count as zero results; an empty return means the deck has no slides.
func Enumerate(stagedDir string) []string {
	root := filepath.Join(stagedDir, Dir)

	if numeric := numericSlides(root); len(numeric) > 0 {
		return numeric
	}
	return indexedSlides(root)
}

// numericSlides lists all-digit subdirectories sorted by numeric value.
func numericSlides(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && allDigits.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		a, errA := strconv.Atoi(names[i])
		b, errB := strconv.Atoi(names[j])
		if errA != nil || errB != nil {
			return names[i] < names[j]
		}
		if a != b {
			return a < b
		}
		// "0" and "00" compare equal numerically; break the tie by name.
		return names[i] < names[j]
	})
	return names
}

// indexedSlides lists subdirectories holding an index.html, sorted by name.
func indexedSlides(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if fileutil.FileExists(filepath.Join(root, e.Name(), IndexFile)) {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)
	return names
}
