package types

// ComposeResult is the parsed output of an outreach email generation call.
type ComposeResult struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
