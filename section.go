package docdex

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// DocumentSection is one heading-delimited span of a document summary,
// identified by a globally unique id.
type DocumentSection struct {
	SectionID string
	Title     string
	Content   string
	Order     int
	Keywords  []string
	Embedding []float64
}

var sectionHeadingRe = regexp.MustCompile(`(?m)^(##|###)\s+(.+)$`)

// SectionKeywordCap bounds how many group keywords a single section carries.
const SectionKeywordCap = 10

// ExtractSections splits a markdown summary on level-2 and level-3 headings.
// Each span becomes a section whose keywords are the subset of groupKeywords
// literally occurring in its text, capped to SectionKeywordCap. A summary
// with no such headings becomes a single "Overview" section.
func ExtractSections(summary string, groupKeywords []string) []DocumentSection {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil
	}

	locs := sectionHeadingRe.FindAllStringSubmatchIndex(summary, -1)
	if len(locs) == 0 {
		return []DocumentSection{newSection("Overview", summary, 0, groupKeywords)}
	}

	var sections []DocumentSection
	for i, loc := range locs {
		title := strings.TrimSpace(summary[loc[4]:loc[5]])
		start := loc[1]
		end := len(summary)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := strings.TrimSpace(summary[start:end])
		if content == "" {
			content = title
		}
		sections = append(sections, newSection(title, content, i, groupKeywords))
	}
	return sections
}

func newSection(title, content string, order int, groupKeywords []string) DocumentSection {
	return DocumentSection{
		SectionID: SectionID(title),
		Title:     title,
		Content:   content,
		Order:     order,
		Keywords:  sectionKeywords(title+" "+content, groupKeywords),
	}
}

// SectionID derives a URL-safe id from a section title plus a short random
// suffix for collision avoidance.
func SectionID(title string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "section"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return slug + "-" + suffix
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func sectionKeywords(text string, groupKeywords []string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, kw := range groupKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			out = append(out, kw)
			if len(out) == SectionKeywordCap {
				break
			}
		}
	}
	return out
}
