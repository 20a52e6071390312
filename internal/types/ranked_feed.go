package types

// RankedFeed represents one collection ordered for a role
type RankedFeed struct {
	Role       string        `json:"role"`
	Collection string        `json:"collection"`
	Threshold  int           `json:"threshold"`
	Entries    []RankedEntry `json:"entries"`
}

// RankedEntry represents a single ranked content entry with its scores
type RankedEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Topic string `json:"topic,omitempty"`
	// Bucket is the normalized 0-10 tier the entry landed in
	Bucket int `json:"bucket"`
	// RawScore is the score before normalization
	RawScore float64  `json:"raw_score"`
	Roles    []string `json:"roles,omitempty"`
	Date     string   `json:"date,omitempty"`
	// Details carries collection-specific display values (matched skill, functionalities)
	Details map[string]any `json:"details,omitempty"`
}
