package analyzer

import (
	"strings"
	"unicode"

	"github.com/sozercan/repo-analyzer/apimodels"
)

const headingDelimiter = "### "

var summaryMarkers = []string{"Summary", "Concise"}

// Sectionize splits a model answer on "### " headings. Summary sections come
// first, everything else keeps the order it had in raw.
//
// Text before the first heading becomes a section with an empty header, so an
// answer that ignored the heading rule is returned as one section.
func Sectionize(raw string) []apimodels.Section {
	var summaries, rest []apimodels.Section

	for i, fragment := range strings.Split(raw, headingDelimiter) {
		if strings.TrimSpace(fragment) == "" {
			continue
		}

		if isSummary(fragment) {
			header := ""
			if i > 0 {
				header, _ = splitHeader(fragment)
			}
			summaries = append(summaries, apimodels.Section{
				Header:    header,
				Body:      stripSummaryMarkers(fragment),
				IsSummary: true,
			})
			continue
		}

		var s apimodels.Section
		if i == 0 {
			s.Body = trimBody(fragment)
		} else {
			s.Header, s.Body = splitHeader(fragment)
		}
		rest = append(rest, s)
	}

	return append(summaries, rest...)
}

// Partition separates the promoted summary blocks from the remaining sections.
func Partition(sections []apimodels.Section) (summaries, rest []apimodels.Section) {
	summaries = []apimodels.Section{}
	rest = []apimodels.Section{}
	for _, s := range sections {
		if s.IsSummary {
			summaries = append(summaries, s)
		} else {
			rest = append(rest, s)
		}
	}
	return summaries, rest
}

func splitHeader(fragment string) (string, string) {
	header, body, _ := strings.Cut(fragment, "\n")
	return strings.TrimSpace(header), trimBody(body)
}

func isSummary(fragment string) bool {
	for _, m := range summaryMarkers {
		if strings.Contains(fragment, m) {
			return true
		}
	}
	return false
}

func stripSummaryMarkers(fragment string) string {
	for _, m := range summaryMarkers {
		fragment = strings.ReplaceAll(fragment, m, "")
	}
	return strings.TrimSpace(fragment)
}

// trimBody drops surrounding blank lines and trailing space but keeps the
// indentation of the first line, which matters for indented code.
func trimBody(body string) string {
	body = strings.TrimRightFunc(body, unicode.IsSpace)
	for {
		line, after, found := strings.Cut(body, "\n")
		if !found || strings.TrimSpace(line) != "" {
			return body
		}
		body = after
	}
}
