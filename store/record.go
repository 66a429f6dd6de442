package store

type Record struct {
	Id        string    `json:"id"`
	Text      string    `json:"text"`
	Metadata  Metadata  `json:"metadata"`
	Embedding []float32 `json:"embedding"`
}

type Metadata struct {
	Restaurant string  `json:"restaurant"`
	Rating     float64 `json:"rating"`
	Author     string  `json:"author,omitempty"`
	Date       string  `json:"date,omitempty"`
	Cuisine    string  `json:"cuisine,omitempty"`
	PriceRange string  `json:"price_range,omitempty"`
	Source     string  `json:"source,omitempty"`
}

// Result pairs a record with its similarity score for one query.
type Result struct {
	Record
	Score float64 `json:"score"`
}
