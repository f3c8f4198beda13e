package analyzer

import "fmt"

// PromptRules are appended to every prompt. The "###" heading rule is what
// Sectionize relies on.
const PromptRules = `Rules:
- Always keep analysis specific to the repository/codebase.
- If the user asks for diagrams (architecture/flow), generate an **ASCII diagram** inside markdown code blocks.
- Provide structured sections with clear headings (###).
- For modernization, suggest languages, frameworks, or practices.
- For new features, explain where in the repo they could be integrated.
- For errors/issues, include possible error codes and fixes.`

// BuildPrompt embeds the repository URL and the user's question verbatim.
func BuildPrompt(repositoryURL, userQuery string) string {
	return fmt.Sprintf(`You are analyzing a repository hosted at: %s.

User request: %s.

%s
`, repositoryURL, userQuery, PromptRules)
}
