package process

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docdex"
)

// FingerprintPrefixLen is how much normalized leading content feeds the
// near-duplicate fingerprint. A tunable approximation: pages with identical
// introductions but different bodies will collide.
const FingerprintPrefixLen = 500

// maxCodeBlocksPerPage caps retained code blocks per page to bound prompt
// size.
const maxCodeBlocksPerPage = 10

// DeduplicateGroup removes near-duplicate pages within one group. A page is
// retained if its content fingerprint is novel or it contributes at least
// one code block not seen before in the group. Retained pages keep only
// their novel code blocks, capped to maxCodeBlocksPerPage.
func DeduplicateGroup(pages []docdex.PageContent) []docdex.PageContent {
	seenContent := make(map[uint64]struct{})
	seenCode := make(map[uint64]struct{})

	var out []docdex.PageContent
	for _, page := range pages {
		contentFP := contentFingerprint(page.Content)
		_, dupContent := seenContent[contentFP]

		var novelCode []string
		for _, code := range page.CodeBlocks {
			fp := codeFingerprint(code)
			if _, ok := seenCode[fp]; ok {
				continue
			}
			if len(novelCode) < maxCodeBlocksPerPage {
				novelCode = append(novelCode, code)
			}
			seenCode[fp] = struct{}{}
		}

		if dupContent && len(novelCode) == 0 {
			continue
		}

		seenContent[contentFP] = struct{}{}
		page.CodeBlocks = novelCode
		out = append(out, page)
	}
	return out
}

// contentFingerprint hashes the whitespace-collapsed, lowercased prefix of
// the page content.
func contentFingerprint(content string) uint64 {
	norm := strings.ToLower(strings.Join(strings.Fields(content), " "))
	if len(norm) > FingerprintPrefixLen {
		norm = norm[:FingerprintPrefixLen]
	}
	return xxhash.Sum64String(norm)
}

// codeFingerprint hashes a whitespace-collapsed code block.
func codeFingerprint(code string) uint64 {
	return xxhash.Sum64String(strings.Join(strings.Fields(code), " "))
}
