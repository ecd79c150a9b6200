package sentiment

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/coinsignal/internal/models"
	"github.com/spacesedan/coinsignal/internal/utils"
)

const (
	finbertModelName = "ProsusAI/finbert"
	modelDir         = "./internal/transformers/models"
	maxTextLength    = 512
)

// FinBERTAnalyzer runs the FinBERT financial-sentiment model through an
// ONNX runtime session. Heavier than VADER but tuned for market language;
// selected with SENTIMENT_BACKEND=finbert.
type FinBERTAnalyzer struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.Mutex
}

func NewFinBERTAnalyzer() (*FinBERTAnalyzer, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("[FinBERT] Failed to create model directory: %w", err)
	}

	modelPath, err := hugot.DownloadModel(finbertModelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return nil, fmt.Errorf("[FinBERT] Failed to download model: %w", err)
	}
	slog.Info("[FinBERT] Model ready", slog.String("path", modelPath))

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("[FinBERT] Failed to initialize ONNX session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "finbertSentimentPipeline",
	}
	classificationPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("[FinBERT] Failed to initialize pipeline: %w", err)
	}

	return &FinBERTAnalyzer{
		session:  session,
		pipeline: classificationPipeline,
	}, nil
}

func (f *FinBERTAnalyzer) Analyze(text string) (models.PostSentiment, error) {
	plainText := NormalizeText(text)
	if plainText == "" {
		return models.PostSentiment{Neutral: 1.0}, nil
	}
	plainText = truncateRunes(plainText, maxTextLength)

	// The ONNX session is not reentrant.
	f.mu.Lock()
	output, err := f.pipeline.RunPipeline([]string{plainText})
	f.mu.Unlock()
	if err != nil {
		return models.PostSentiment{}, fmt.Errorf("[FinBERT] Inference failed: %w", err)
	}

	raw := output.GetOutput()
	if len(raw) == 0 {
		return models.PostSentiment{}, fmt.Errorf("[FinBERT] Empty pipeline output")
	}

	payload, ok := raw[0].(string)
	if !ok {
		return models.PostSentiment{}, fmt.Errorf("[FinBERT] Unexpected output format %T", raw[0])
	}

	var classification struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := utils.DeserializeFromJSON([]byte(payload), &classification); err != nil {
		return models.PostSentiment{}, fmt.Errorf("[FinBERT] Failed to parse output: %w", err)
	}

	return distributionFromLabel(classification.Label, classification.Score), nil
}

// Close releases the ONNX session. The analyzer is unusable afterwards.
func (f *FinBERTAnalyzer) Close() {
	f.session.Destroy()
}

// truncateRunes caps text at max characters without splitting a
// multi-byte rune, which would hand the tokenizer invalid UTF-8.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// distributionFromLabel rebuilds a VADER-shaped score distribution from a
// winning label and its probability, splitting the remaining mass evenly
// across the other two classes.
func distributionFromLabel(label string, score float64) models.PostSentiment {
	rest := (1.0 - score) / 2.0

	var s models.PostSentiment
	switch label {
	case "positive":
		s = models.PostSentiment{Positive: score, Negative: rest, Neutral: rest}
	case "negative":
		s = models.PostSentiment{Positive: rest, Negative: score, Neutral: rest}
	default:
		s = models.PostSentiment{Positive: rest, Negative: rest, Neutral: score}
	}
	s.Compound = s.Positive - s.Negative

	return s
}
