package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docdex"
	"google.golang.org/genai"
)

// summaryContentLen bounds the per-page prose sample in the summary prompt.
const summaryContentLen = 2000

// Ensure Summarizer implements docdex.Summarizer at compile time.
var _ docdex.Summarizer = (*Summarizer)(nil)

// Summarizer writes a markdown summary for a content group using Gemini.
// Model failure degrades to a deterministic locally generated document, so
// Summarize never fails on provider errors.
type Summarizer struct {
	client *genai.Client
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client *genai.Client) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize generates the group's summary markdown. The result always
// begins with a heading.
func (s *Summarizer) Summarize(ctx context.Context, name, description string, pages []docdex.PageContent) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildSummaryPrompt(name, description, pages)}},
		}},
		summaryConfig(),
	)
	if err != nil || result == nil {
		return BuildFallbackSummary(name, description, pages), nil
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return BuildFallbackSummary(name, description, pages), nil
	}
	return EnsureHeading(name, text), nil
}

func summaryConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You write reference documentation summaries. Produce a markdown document with a leading heading, an overview section, consolidated code examples in the order given, and API signatures where present. Respond with markdown only.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildSummaryPrompt builds the user prompt for summary generation from the
// deduplicated, code-prioritized pages of one group.
func BuildSummaryPrompt(name, description string, pages []docdex.PageContent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a documentation summary for the topic %q.\n", name)
	if description != "" {
		fmt.Fprintf(&sb, "Topic description: %s\n", description)
	}
	sb.WriteString("\nSource pages:\n\n")
	for _, p := range pages {
		fmt.Fprintf(&sb, "## %s\n", p.Title)
		fmt.Fprintf(&sb, "URL: %s\n\n", p.URL)
		sb.WriteString(truncate(strings.TrimSpace(p.Content), summaryContentLen))
		sb.WriteString("\n")
		for _, code := range p.CodeBlocks {
			fmt.Fprintf(&sb, "\n```\n%s\n```\n", strings.TrimSpace(code))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// BuildFallbackSummary assembles a deterministic summary document from the
// pages themselves, used when the model is unavailable or returns nothing.
func BuildFallbackSummary(name, description string, pages []docdex.PageContent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", headingTitle(name))
	if description != "" {
		sb.WriteString(description + "\n\n")
	}
	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = p.URL
		}
		fmt.Fprintf(&sb, "## %s\n\n", title)
		fmt.Fprintf(&sb, "Source: %s\n\n", p.URL)
		content := truncate(strings.TrimSpace(p.Content), summaryContentLen)
		if content != "" {
			sb.WriteString(content + "\n\n")
		}
		for _, code := range p.CodeBlocks {
			fmt.Fprintf(&sb, "```\n%s\n```\n\n", strings.TrimSpace(code))
		}
	}
	return strings.TrimSpace(sb.String())
}
