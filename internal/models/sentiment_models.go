package models

import "encoding/json"

// PostSentiment holds VADER-style polarity scores for a single text.
// Compound is in [-1,1], the component scores in [0,1]. Malformed inputs
// may break those bounds; downstream scoring clamps instead of trusting them.
type PostSentiment struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
}

// SentimentScores is the nested score block used by transformer-backed
// analyzers that also emit a label and a confidence.
type SentimentScores struct {
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Positive float64 `json:"positive"`
	Compound float64 `json:"compound"`
}

// AnalyzerResponse is the richer response shape of the classification
// backends: a winning label plus the full score distribution.
type AnalyzerResponse struct {
	Label      string          `json:"label"`
	Confidence float64         `json:"confidence"`
	Scores     SentimentScores `json:"scores"`
}

// UnmarshalJSON accepts either the flat {compound,pos,neg,neu} shape or
// the richer {label,confidence,scores:{...}} shape, so payloads from any
// analyzer backend decode into the same struct. Fields missing from the
// payload default to zero.
func (s *PostSentiment) UnmarshalJSON(data []byte) error {
	type flat PostSentiment
	var probe struct {
		flat
		Scores *SentimentScores `json:"scores"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if probe.Scores != nil {
		*s = PostSentiment{
			Compound: probe.Scores.Compound,
			Positive: probe.Scores.Positive,
			Negative: probe.Scores.Negative,
			Neutral:  probe.Scores.Neutral,
		}
		return nil
	}

	*s = PostSentiment(probe.flat)
	return nil
}

// ParseSentimentPayload decodes a standalone sentiment payload in either
// supported shape.
func ParseSentimentPayload(data []byte) (PostSentiment, error) {
	var s PostSentiment
	if err := json.Unmarshal(data, &s); err != nil {
		return PostSentiment{}, err
	}
	return s, nil
}
