package gemini

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/docdex"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// navHTMLCap bounds how much navigation HTML is sent to the model.
const navHTMLCap = 50000

// Ensure Navigator implements docdex.Navigator at compile time.
var _ docdex.Navigator = (*Navigator)(nil)

// Navigator extracts documentation links with Gemini when structural sidebar
// heuristics fail.
type Navigator struct {
	client *genai.Client
}

// NewNavigator creates a new Navigator.
func NewNavigator(client *genai.Client) *Navigator {
	return &Navigator{client: client}
}

// ExtractLinks sends size-capped navigation HTML to the model and parses the
// returned JSON array of links. Results pass through the same admission
// filter and dedup as structural extraction.
func (n *Navigator) ExtractLinks(ctx context.Context, navHTML string, baseURL string) ([]docdex.DocumentationLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL: %v", err)
	}

	prompt := BuildNavigationPrompt(truncate(navHTML, navHTMLCap), baseURL)

	result, err := n.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		navigationConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "gemini returned nil result")
	}

	var raw []struct {
		URL      string `json:"url"`
		Title    string `json:"title"`
		Category string `json:"category"`
	}
	if err := ParseJSONArray(result.Text(), &raw); err != nil {
		return nil, err
	}

	var links []docdex.DocumentationLink
	for _, r := range raw {
		if abs, ok := docdex.AdmitLink(base, r.URL, r.Title); ok {
			links = append(links, docdex.DocumentationLink{
				URL:      abs,
				Title:    strings.TrimSpace(r.Title),
				Category: strings.TrimSpace(r.Category),
			})
		}
	}
	return docdex.DedupeLinks(links), nil
}

func navigationConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You extract documentation page links from website navigation HTML. Respond with a JSON array of objects with keys url, title, and category. Include only links to documentation pages; exclude marketing, social, authentication, and search links. Respond with the JSON array only, no other text.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildNavigationPrompt builds the user prompt for AI link extraction.
func BuildNavigationPrompt(navHTML, baseURL string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Base URL: %s\n\n", baseURL)
	sb.WriteString("Navigation HTML:\n")
	sb.WriteString(navHTML)
	return sb.String()
}
