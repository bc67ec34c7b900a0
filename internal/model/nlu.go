package model

// SentimentLabel is the document-level sentiment class.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// EntityType classifies a detected entity.
type EntityType string

const (
	EntityTime  EntityType = "TIME"
	EntityMoney EntityType = "MONEY"
)

// DocumentSentiment holds the score and label for the whole text.
type DocumentSentiment struct {
	Score float64        `json:"score"`
	Label SentimentLabel `json:"label"`
}

// Sentiment wraps the document sentiment, matching the NLU wire shape.
type Sentiment struct {
	Document DocumentSentiment `json:"document"`
}

// Keyword is an extracted term with relevance in [0,1].
type Keyword struct {
	Text      string  `json:"text"`
	Relevance float64 `json:"relevance"`
}

// Entity is a detected span of a known type.
type Entity struct {
	Text string     `json:"text"`
	Type EntityType `json:"type"`
}

// NLUAnalysis is the result of analysing a piece of user text.
type NLUAnalysis struct {
	Sentiment Sentiment `json:"sentiment"`
	Keywords  []Keyword `json:"keywords"`
	Entities  []Entity  `json:"entities"`
}
