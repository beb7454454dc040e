package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docdex"
	"google.golang.org/genai"
)

// contentPreviewLen bounds the per-page content sample in the grouping
// prompt.
const contentPreviewLen = 300

// Ensure Grouper implements docdex.Grouper at compile time.
var _ docdex.Grouper = (*Grouper)(nil)

// Grouper partitions crawled pages into topical groups using Gemini. Any
// model or parse failure returns an error so the caller can apply the
// deterministic path-segment fallback.
type Grouper struct {
	client *genai.Client
}

// NewGrouper creates a new Grouper.
func NewGrouper(client *genai.Client) *Grouper {
	return &Grouper{client: client}
}

// GroupPages sends a digest of every page to the model and parses the
// returned group assignments.
func (g *Grouper) GroupPages(ctx context.Context, pages []docdex.PageContent) ([]docdex.GroupAssignment, error) {
	if len(pages) == 0 {
		return nil, nil
	}

	result, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildGroupingPrompt(pages)}},
		}},
		groupingConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "gemini returned nil result")
	}

	var groups []docdex.GroupAssignment
	if err := ParseJSONArray(result.Text(), &groups); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, docdex.Errorf(docdex.EINVALID, "model returned no groups")
	}
	return groups, nil
}

func groupingConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You organize documentation pages into topical groups. Respond with a JSON array of objects with keys name (a short lowercase slug), page_indices (array of integers), and description (one sentence). Every page index must appear in exactly one group. Respond with the JSON array only, no other text.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildGroupingPrompt builds the user prompt containing a digest of every
// page: index, url, title, content preview, and whether code is present.
func BuildGroupingPrompt(pages []docdex.PageContent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Group these %d documentation pages into coherent topics.\n\n", len(pages))
	for i, p := range pages {
		fmt.Fprintf(&sb, "Page %d:\n", i)
		fmt.Fprintf(&sb, "  URL: %s\n", p.URL)
		fmt.Fprintf(&sb, "  Title: %s\n", p.Title)
		fmt.Fprintf(&sb, "  Content: %s\n", truncate(strings.TrimSpace(p.Content), contentPreviewLen))
		if len(p.CodeBlocks) > 0 {
			fmt.Fprintf(&sb, "  Code sample: %s\n", truncate(strings.TrimSpace(p.CodeBlocks[0]), contentPreviewLen))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
