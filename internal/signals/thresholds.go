package signals

import (
	"log/slog"
	"os"
	"strconv"
)

// Thresholds holds the cut points for signal classification plus the
// minimums used for mention filtering and engagement normalization.
// A Generator never mutates its Thresholds after construction.
type Thresholds struct {
	StrongBuy     float64
	Buy           float64
	Neutral       float64
	Sell          float64
	StrongSell    float64
	MinMentions   int
	MinEngagement float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		StrongBuy:     0.8,
		Buy:           0.5,
		Neutral:       0.0,
		Sell:          -0.5,
		StrongSell:    -0.8,
		MinMentions:   5,
		MinEngagement: 100.0,
	}
}

// ThresholdsFromEnv starts from the defaults and applies any SIGNAL_*
// overrides present in the environment. Unparseable values are logged
// and ignored.
func ThresholdsFromEnv() Thresholds {
	t := DefaultThresholds()

	overrideFloat("SIGNAL_STRONG_BUY", &t.StrongBuy)
	overrideFloat("SIGNAL_BUY", &t.Buy)
	overrideFloat("SIGNAL_SELL", &t.Sell)
	overrideFloat("SIGNAL_STRONG_SELL", &t.StrongSell)
	overrideFloat("SIGNAL_MIN_ENGAGEMENT", &t.MinEngagement)
	overrideInt("SIGNAL_MIN_MENTIONS", &t.MinMentions)

	return t
}

func overrideFloat(key string, dst *float64) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.Warn("[SignalGenerator] Ignoring invalid threshold override",
			slog.String("key", key),
			slog.String("value", raw))
		return
	}
	*dst = v
}

func overrideInt(key string, dst *int) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		slog.Warn("[SignalGenerator] Ignoring invalid threshold override",
			slog.String("key", key),
			slog.String("value", raw))
		return
	}
	*dst = v
}
