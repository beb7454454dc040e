package docdex_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitLink(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://docs.example.com/guide/")
	require.NoError(t, err)

	tests := []struct {
		name    string
		href    string
		title   string
		want    string
		wantOK  bool
	}{
		{name: "relative link resolves", href: "intro", title: "Intro", want: "https://docs.example.com/guide/intro", wantOK: true},
		{name: "root-relative link", href: "/api/users", title: "Users", want: "https://docs.example.com/api/users", wantOK: true},
		{name: "absolute same-host link", href: "https://docs.example.com/faq", title: "FAQ", want: "https://docs.example.com/faq", wantOK: true},
		{name: "empty href", href: "", title: "Intro", wantOK: false},
		{name: "empty title", href: "intro", title: "", wantOK: false},
		{name: "pure anchor", href: "#section", title: "Section", wantOK: false},
		{name: "external domain", href: "https://other.example.com/docs", title: "Docs", wantOK: false},
		{name: "subdomain differs", href: "https://blog.example.com/post", title: "Post", wantOK: false},
		{name: "social denylist", href: "https://twitter.com/example", title: "Twitter", wantOK: false},
		{name: "login denylist", href: "/login", title: "Sign in", wantOK: false},
		{name: "mailto", href: "mailto:team@example.com", title: "Contact", wantOK: false},
		{name: "javascript", href: "javascript:void(0)", title: "Toggle", wantOK: false},
		{name: "search query", href: "/docs?search=foo", title: "Search", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := docdex.AdmitLink(base, tt.href, tt.title)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDedupeLinks(t *testing.T) {
	t.Parallel()

	links := []docdex.DocumentationLink{
		{URL: "https://docs.example.com/a", Title: "A", Category: "First"},
		{URL: "https://docs.example.com/b", Title: "B"},
		{URL: "https://docs.example.com/a", Title: "A again", Category: "Second"},
		{URL: "https://docs.example.com/c", Title: "C"},
	}
	got := docdex.DedupeLinks(links)
	require.Len(t, got, 3)
	assert.Equal(t, "https://docs.example.com/a", got[0].URL)
	assert.Equal(t, "First", got[0].Category)
	assert.Equal(t, "https://docs.example.com/b", got[1].URL)
	assert.Equal(t, "https://docs.example.com/c", got[2].URL)
}
