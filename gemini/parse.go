// Package gemini implements the external-model adapters: AI link
// extraction, page grouping, summary generation, and text embeddings.
package gemini

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/docdex"
)

// ParseJSONArray extracts and unmarshals the first '['-to-last-']' span of
// text into v. Models routinely wrap their JSON in prose or code fences, so
// the parse is permissive about surroundings but strict about the payload.
func ParseJSONArray(text string, v any) error {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return docdex.Errorf(docdex.EINVALID, "no JSON array found in model response")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return docdex.Errorf(docdex.EINVALID, "malformed JSON array in model response: %v", err)
	}
	return nil
}

// EnsureHeading guarantees markdown begins with a heading, synthesizing one
// from name when the model omits it.
func EnsureHeading(name, markdown string) string {
	markdown = strings.TrimSpace(markdown)
	if strings.HasPrefix(markdown, "#") {
		return markdown
	}
	title := headingTitle(name)
	if markdown == "" {
		return "# " + title
	}
	return "# " + title + "\n\n" + markdown
}

// headingTitle turns a slug-like group name into a display title.
func headingTitle(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Documentation"
	}
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// truncate cuts s to at most max bytes, backing up so a multi-byte rune is
// never split.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
