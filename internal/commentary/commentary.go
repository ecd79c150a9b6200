package commentary

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/openai/openai-go"

	"github.com/spacesedan/coinsignal/internal/clients"
	"github.com/spacesedan/coinsignal/internal/models"
)

const maxSignalsInPrompt = 5

// Enabled reports whether snapshot commentary generation is turned on.
// The pipeline works without it; this is an opt-in enrichment.
func Enabled() bool {
	return os.Getenv("COMMENTARY_ENABLED") == "true"
}

// ForSnapshot asks the model for a short market commentary over the
// snapshot's top signals.
func ForSnapshot(ctx context.Context, snapshot *models.TrendSnapshot) (string, error) {
	client := clients.GetOpenAIClient()

	prompt := buildPrompt(snapshot)

	resp, err := client.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.F(openai.ChatModelGPT4oMini),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a crypto market analyst. Summarize social sentiment signals in two or three sentences. Be factual, never give financial advice."),
			openai.UserMessage(prompt),
		}),
	})
	if err != nil {
		return "", fmt.Errorf("[Commentary] Completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("[Commentary] Completion returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	slog.Info("[Commentary] Generated snapshot commentary",
		slog.Int("length", len(text)))
	return text, nil
}

func buildPrompt(snapshot *models.TrendSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Social sentiment snapshot over %d posts (average sentiment %.3f).\n",
		snapshot.TotalTweets, snapshot.AverageSentiment)
	b.WriteString("Top signals by strength:\n")

	count := len(snapshot.TradingSignals)
	if count > maxSignalsInPrompt {
		count = maxSignalsInPrompt
	}
	for _, signal := range snapshot.TradingSignals[:count] {
		fmt.Fprintf(&b, "- %s: %s (strength %.3f, confidence %.3f, %d mentions)\n",
			strings.ToUpper(signal.Coin), signal.SignalType, signal.SignalStrength,
			signal.Confidence, signal.Metrics.MentionCount)
	}

	return b.String()
}
