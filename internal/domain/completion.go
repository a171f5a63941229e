package domain

// CompletionRequest is one request to the text-completion collaborator.
// When JSON is set the reply must be a single JSON object.
type CompletionRequest struct {
	System string
	User   string
	JSON   bool
}
