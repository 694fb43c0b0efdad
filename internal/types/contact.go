package types

// Contact is a recruiter/HR contact resolved for a company or posting.
// Ephemeral, constructed per enrichment request.
type Contact struct {
	Found    bool   `json:"found"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Company  string `json:"company,omitempty"`
	Title    string `json:"title,omitempty"`
}

// HasRecipient reports whether the contact carries enough identity to be
// addressed in an outreach email.
func (c *Contact) HasRecipient() bool {
	if c == nil || !c.Found {
		return false
	}
	return c.Name != "" || c.Title != "" || c.Company != ""
}
