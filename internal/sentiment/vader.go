package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/spacesedan/coinsignal/internal/models"
)

// VaderAnalyzer scores text with the VADER lexicon. It is the default
// backend: fast, deterministic, and dependency-free at runtime.
type VaderAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

func (v *VaderAnalyzer) Analyze(text string) (models.PostSentiment, error) {
	plainText := NormalizeText(text)
	if plainText == "" {
		return models.PostSentiment{Neutral: 1.0}, nil
	}

	scores := v.analyzer.PolarityScores(plainText)

	return models.PostSentiment{
		Compound: scores.Compound,
		Positive: scores.Positive,
		Negative: scores.Negative,
		Neutral:  scores.Neutral,
	}, nil
}
