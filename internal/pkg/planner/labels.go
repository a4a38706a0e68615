package planner

import (
	"path/filepath"
	"strings"
	"unicode"
)

// NoLabel is assigned to entries whose path is not under any watched root.
const NoLabel = "No_label"

// RootLabel pairs a watched root with its display label: the root's final
// path segment, capitalized. The pairs are kept as an ordered list so label
// resolution is deterministic.
type RootLabel struct {
	Root  string
	Label string
}

// BuildLabels derives the label list from the watched roots, in config order.
func BuildLabels(roots []string) []RootLabel {
	labels := make([]RootLabel, 0, len(roots))
	for _, root := range roots {
		labels = append(labels, RootLabel{
			Root:  filepath.Clean(root),
			Label: capitalize(filepath.Base(filepath.Clean(root))),
		})
	}

	return labels
}

// Resolve returns the label of the watched root containing path, using
// longest-prefix matching on path segment boundaries: /data/foo never claims
// /data/foobar/x. Paths outside every root resolve to NoLabel.
func Resolve(labels []RootLabel, path string) string {
	path = filepath.Clean(path)

	best := NoLabel
	bestLen := -1
	for _, rl := range labels {
		if underRoot(rl.Root, path) && len(rl.Root) > bestLen {
			best = rl.Label
			bestLen = len(rl.Root)
		}
	}

	return best
}

// RootFor returns the watched root carrying the given label.
func RootFor(labels []RootLabel, label string) (string, bool) {
	for _, rl := range labels {
		if rl.Label == label {
			return rl.Root, true
		}
	}

	return "", false
}

func underRoot(root, path string) bool {
	if root == path {
		return true
	}
	if root == string(filepath.Separator) {
		return strings.HasPrefix(path, root)
	}

	return strings.HasPrefix(path, root+string(filepath.Separator))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
