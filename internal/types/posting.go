package types

// Posting (a.k.a. job hit) is one job-listing record returned by a portal
// search. Postings are ephemeral: they are constructed per search request and
// never persisted. Score is zero until the ranker assigns one, and is only
// comparable within the same ranking call.
type Posting struct {
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Location string  `json:"location,omitempty"`
	URL      string  `json:"url,omitempty"`
	Portal   string  `json:"portal,omitempty"`
	Snippet  string  `json:"snippet,omitempty"`
	Score    float64 `json:"score"`
}
