// Package normalize canonicalizes skill names and requirement phrases so
// that spelling variants ("ReactJS", "react.js") resolve to one graph key.
package normalize

import (
	"strings"
)

// synonyms folds common variants onto one canonical key. Applied after
// lowercasing and punctuation stripping, so entries here are already in
// stripped form.
var synonyms = map[string]string{
	"js":          "javascript",
	"javascripts": "javascript",
	"ts":          "typescript",
	"reactjs":     "react",
	"react js":    "react",
	"vuejs":       "vue",
	"vue js":      "vue",
	"nodejs":      "nodejs",
	"node js":     "nodejs",
	"node":        "nodejs",
	"golang":      "go",
	"k8s":         "kubernetes",
	"net core":    "dotnet core",
	"net":         "dotnet",
	"c sharp":     "csharp",
	"postgres":    "postgresql",
	"psql":        "postgresql",
	"py":          "python",
	"ml":          "machine learning",
	"ai":          "artificial intelligence",
	"gcp":         "google cloud",
	"amazon web services": "aws",
}

// Key normalizes free text to a canonical skill key: lowercase, punctuation
// replaced by spaces, whitespace runs collapsed, then synonym folding.
// Idempotent. Empty or whitespace-only input yields "" which callers treat
// as no signal, not an error. Unknown tokens pass through unchanged.
func Key(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(lower))
	lastSpace := false
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case r == '+', r == '#':
			// c++, c# and friends keep their suffix meaning; spell it out.
			if r == '+' {
				b.WriteString("plus")
			} else {
				b.WriteString("sharp")
			}
			lastSpace = false
		default:
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	key := strings.TrimSpace(b.String())
	if canonical, ok := synonyms[key]; ok {
		return canonical
	}
	return key
}

// Set normalizes a list of terms, dropping empties and case-insensitive
// duplicates while preserving first-seen order.
func Set(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		key := Key(t)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
