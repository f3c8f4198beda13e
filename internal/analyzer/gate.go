package analyzer

import "strings"

// RepoKeywords are the terms a question must mention to be considered
// repository or code related.
var RepoKeywords = []string{
	"repo", "repository", "code", "function", "class", "bug", "issue",
	"modernize", "refactor", "feature", "error", "diagram", "architecture",
	"flow", "logic", "integration", "module", "script",
}

// IsRepoRelated reports whether query mentions any of RepoKeywords. Matching is
// a case-insensitive substring test with no word boundaries, so "classic" passes
// on "class".
func IsRepoRelated(query string) bool {
	q := strings.ToLower(query)
	for _, k := range RepoKeywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}
