package sentiment

import (
	"github.com/spacesedan/coinsignal/internal/models"
)

// Analyzer scores a single text. Implementations must be safe for
// concurrent use by the pipeline workers.
type Analyzer interface {
	Analyze(text string) (models.PostSentiment, error)
}

// Label cut points on the compound score.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// LabelFor maps a compound score to the coarse sentiment label used in
// stored results.
func LabelFor(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return "positive"
	case compound <= negativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}
