package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/spacesedan/coinsignal/internal/logging"
	"github.com/spacesedan/coinsignal/internal/pipeline"
	"github.com/spacesedan/coinsignal/internal/sentiment"
	"github.com/spacesedan/coinsignal/internal/signals"
)

// Offline batch runner: reads a Twitter search dump, runs the full
// scoring pipeline over it, and writes the snapshot as JSON.
func main() {
	var (
		inputPath  = flag.String("input", "", "path to a Twitter search dump (required)")
		outputPath = flag.String("output", "", "write the snapshot here instead of stdout")
		maxPosts   = flag.Int("max-posts", 100, "cap on posts taken from the dump")
		workers    = flag.Int("workers", 4, "concurrent scoring workers")
	)
	flag.Parse()

	logging.InitLogger()

	if *inputPath == "" {
		slog.Error("[Pipeline] -input is required")
		os.Exit(1)
	}

	posts, err := pipeline.LoadTwitterDump(*inputPath, *maxPosts)
	if err != nil {
		slog.Error("[Pipeline] Failed to load corpus",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	orchestrator := pipeline.NewOrchestrator(
		sentiment.NewVaderAnalyzer(),
		pipeline.NewKeywordSet(),
		signals.NewGenerator(signals.ThresholdsFromEnv()),
		*workers,
	)

	snapshot, err := orchestrator.Run(context.Background(), posts)
	if err != nil {
		slog.Error("[Pipeline] Batch run failed",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		slog.Error("[Pipeline] Failed to encode snapshot",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *outputPath == "" {
		os.Stdout.Write(append(out, '\n'))
		return
	}

	if err := os.WriteFile(*outputPath, out, 0o644); err != nil {
		slog.Error("[Pipeline] Failed to write snapshot",
			slog.String("path", *outputPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[Pipeline] Snapshot written",
		slog.String("path", *outputPath),
		slog.Int("signals", len(snapshot.TradingSignals)))
}
