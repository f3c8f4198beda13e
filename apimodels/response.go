package apimodels

type AnalysisResponse struct {
	// Summary blocks, promoted ahead of everything else
	Summaries []Section `json:"summaries"`

	// Remaining sections in the order the model wrote them
	Sections []Section `json:"sections"`

	// The unprocessed model output
	Raw string `json:"raw"`

	// Metadata about the analysis
	Metadata AnalysisMetadata `json:"metadata"`
}

// Section is one "### " delimited block of the model's answer.
type Section struct {
	Header    string `json:"header"`
	Body      string `json:"body"`
	IsSummary bool   `json:"isSummary"`
}

type AnalysisMetadata struct {
	// Time taken for analysis
	Duration string `json:"duration"`

	// Model used for analysis
	Model string `json:"model"`

	// Tokens used in analysis
	TokensUsed int64 `json:"tokensUsed"`
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
