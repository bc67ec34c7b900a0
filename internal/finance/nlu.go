package finance

import (
	"math/rand/v2"
	"strings"

	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/money"
)

// Vocabulary is the fixed pool keywords are drawn from.
var Vocabulary = [...]string{
	"money", "savings", "budget", "expenses",
	"income", "investment", "debt", "loan",
}

var sentiments = [...]model.SentimentLabel{
	model.SentimentPositive,
	model.SentimentNegative,
	model.SentimentNeutral,
}

// SentimentScore is the fixed document score reported for each label.
var SentimentScore = map[model.SentimentLabel]float64{
	model.SentimentPositive: 0.8,
	model.SentimentNegative: 0.2,
	model.SentimentNeutral:  0.6,
}

const (
	maxKeywords = 3
	maxEntities = 3
)

// AnalyzeText produces a placeholder NLU analysis. The sentiment label and
// the keywords come from rng and do not depend on text; only entity
// detection reads the input. A nil rng uses a randomly seeded source.
func AnalyzeText(text string, rng *rand.Rand) model.NLUAnalysis {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	label := sentiments[rng.IntN(len(sentiments))]

	pool := Vocabulary
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	keywords := make([]model.Keyword, 0, maxKeywords)
	for _, kw := range pool[:maxKeywords] {
		keywords = append(keywords, model.Keyword{
			Text:      kw,
			Relevance: money.Round(rng.Float64()*0.5+0.5, 2),
		})
	}

	return model.NLUAnalysis{
		Sentiment: model.Sentiment{Document: model.DocumentSentiment{
			Score: SentimentScore[label],
			Label: label,
		}},
		Keywords: keywords,
		Entities: detectEntities(text),
	}
}

func detectEntities(text string) []model.Entity {
	lower := strings.ToLower(text)
	entities := []model.Entity{}
	if strings.Contains(lower, "month") {
		entities = append(entities, model.Entity{Text: "month", Type: model.EntityTime})
	}
	if strings.Contains(lower, "year") {
		entities = append(entities, model.Entity{Text: "year", Type: model.EntityTime})
	}
	if strings.Contains(text, "$") || strings.Contains(lower, "dollar") {
		entities = append(entities, model.Entity{Text: "dollar", Type: model.EntityMoney})
	}
	if len(entities) > maxEntities {
		entities = entities[:maxEntities]
	}
	return entities
}
