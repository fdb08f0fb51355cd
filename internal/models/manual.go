package models

// ManualItem is one entry of the staff manual served through the chat webhook.
type ManualItem struct {
	ID       int      `json:"id"`
	Category string   `json:"category"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags"`
	IsPublic bool     `json:"is_public"`
}
