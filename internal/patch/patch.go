// Package patch describes what a mutation changed in a site document, as a
// line diff of the JSON form and as a list of changed field paths.
package patch

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/sitegen/internal/site"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a patch (in diff-match-patch text form) that turns the
// indented JSON of before into that of after. Identical documents yield "".
func Diff(before, after site.Document) (string, error) {
	a, err := render(before)
	if err != nil {
		return "", err
	}
	b, err := render(after)
	if err != nil {
		return "", err
	}
	if a == b {
		return "", nil
	}

	dmp := diffmatchpatch.New()
	// Diff whole lines so hunks align with JSON fields.
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	patches := dmp.PatchMake(a, diffs)
	return dmp.PatchToText(patches), nil
}

// ChangedPaths returns the sorted dotted paths of every leaf value that
// differs between before and after, e.g. "design.colors.primary".
// Lists are compared as a whole.
func ChangedPaths(before, after site.Document) ([]string, error) {
	a, err := flatten(before)
	if err != nil {
		return nil, err
	}
	b, err := flatten(after)
	if err != nil {
		return nil, err
	}
	var paths []string
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			paths = append(paths, k)
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			paths = append(paths, k)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func render(doc site.Document) (string, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	return string(b) + "\n", nil
}

// flatten maps each leaf path to its JSON encoding.
func flatten(doc site.Document) (map[string]string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	out := make(map[string]string)
	walk("", m, out)
	return out, nil
}

func walk(prefix string, v any, out map[string]string) {
	if m, ok := v.(map[string]any); ok && len(m) > 0 {
		for k, child := range m {
			walk(join(prefix, k), child, out)
		}
		return
	}
	b, _ := json.Marshal(v)
	out[prefix] = string(b)
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return strings.Join([]string{prefix, key}, ".")
}
