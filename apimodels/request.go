package apimodels

type AnalysisRequest struct {
	// RepositoryURL is the repository the question is about. It is passed to the
	// model as-is and never fetched.
	RepositoryURL string `json:"repositoryUrl"`

	// Query is the natural language question about the repository
	Query string `json:"query"`
}
