package docdex

import "strings"

// DefaultCategory is assigned when no rule matches.
const DefaultCategory = "Documentation"

// categoryRules maps name/URL substrings to category labels, checked in
// order.
var categoryRules = []struct {
	substr string
	label  string
}{
	{"getting-started", "Getting Started"},
	{"getting_started", "Getting Started"},
	{"quickstart", "Getting Started"},
	{"quick-start", "Getting Started"},
	{"introduction", "Getting Started"},
	{"install", "Getting Started"},
	{"setup", "Getting Started"},
	{"tutorial", "Tutorials"},
	{"guide", "Guides"},
	{"how-to", "Guides"},
	{"howto", "Guides"},
	{"example", "Examples"},
	{"sample", "Examples"},
	{"api", "API Reference"},
	{"reference", "API Reference"},
	{"sdk", "API Reference"},
	{"config", "Configuration"},
	{"settings", "Configuration"},
	{"deploy", "Deployment"},
	{"hosting", "Deployment"},
	{"troubleshoot", "Troubleshooting"},
	{"faq", "Troubleshooting"},
	{"error", "Troubleshooting"},
	{"security", "Security"},
	{"auth", "Security"},
	{"migration", "Migration"},
	{"upgrade", "Migration"},
	{"changelog", "Release Notes"},
	{"release", "Release Notes"},
}

// InferCategory maps a group's name, then its pages' URLs, to a category
// label. When pages suggest different categories the most frequent wins.
func InferCategory(groupName string, pages []PageContent) string {
	if label, ok := matchCategory(groupName); ok {
		return label
	}

	votes := make(map[string]int)
	first := make(map[string]int)
	for i, p := range pages {
		if label, ok := matchCategory(p.URL); ok {
			if _, seen := votes[label]; !seen {
				first[label] = i
			}
			votes[label]++
		}
	}
	best := ""
	for label, n := range votes {
		if best == "" || n > votes[best] || (n == votes[best] && first[label] < first[best]) {
			best = label
		}
	}
	if best != "" {
		return best
	}
	return DefaultCategory
}

func matchCategory(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, rule := range categoryRules {
		if strings.Contains(lower, rule.substr) {
			return rule.label, true
		}
	}
	return "", false
}
