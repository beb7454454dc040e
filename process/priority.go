package process

import (
	"sort"
	"strings"
)

// Language priority tiers for code-block ordering. Lower sorts first.
const (
	priorityJavaScript = 1
	priorityPython     = 2
	priorityPHP        = 3
	priorityOther      = 4
)

var jsIndicators = []string{
	"function ", "const ", "let ", "var ", "=>", "console.log", "async ",
	"await ", "require(", "import ", "export ", "document.", "null",
}

var pythonIndicators = []string{
	"def ", "import ", "from ", "print(", "self.", "elif ", "lambda ",
	"None", "True", "False", "__init__",
}

var phpIndicators = []string{
	"<?php", "$", "->", "echo ", "function ", "::", "use ", "namespace ",
}

// PrioritizeCodeBlocks orders code blocks by example-language priority:
// JavaScript first, then Python, then PHP, then everything else. Blocks in
// the same tier keep their original order.
func PrioritizeCodeBlocks(blocks []string) []string {
	out := make([]string, len(blocks))
	copy(out, blocks)
	sort.SliceStable(out, func(i, j int) bool {
		return languagePriority(out[i]) < languagePriority(out[j])
	})
	return out
}

// languagePriority classifies a block by counting language-specific
// indicator substrings; the language with the most hits wins.
func languagePriority(code string) int {
	js := countIndicators(code, jsIndicators)
	py := countIndicators(code, pythonIndicators)
	php := countIndicators(code, phpIndicators)

	if js == 0 && py == 0 && php == 0 {
		return priorityOther
	}
	switch {
	case js >= py && js >= php:
		return priorityJavaScript
	case py >= php:
		return priorityPython
	default:
		return priorityPHP
	}
}

func countIndicators(code string, indicators []string) int {
	count := 0
	for _, indicator := range indicators {
		count += strings.Count(code, indicator)
	}
	return count
}
