package domain

// Intent values the extractor recognizes.
const (
	IntentFindPeople   = "find_people"
	IntentFindProjects = "find_projects"
)

// IntentResult is the parsed classification of a chat message.
// Empty strings mean the model produced no usable value.
type IntentResult struct {
	Intent string
	Domain string
}

// Recognized reports whether the intent maps to a search path.
func (r IntentResult) Recognized() bool {
	return r.Intent == IntentFindPeople || r.Intent == IntentFindProjects
}

// AssistantRequest is the chat endpoint's request body.
type AssistantRequest struct {
	Message string `json:"message" binding:"required,min=1,max=2000"`
}

// AssistantReply is the chat endpoint's response body.
type AssistantReply struct {
	Message    string            `json:"message"`
	Intent     string            `json:"intent,omitempty"`
	Developers []DeveloperResult `json:"developers,omitempty"`
	Projects   []ProjectResult   `json:"projects,omitempty"`
}
