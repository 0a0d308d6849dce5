// Package worker hosts the learn worker, which applies category
// corrections to the persistent lexicon and the in-process classifier.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sg-217/paisabuddy/internal/amqp"
	"github.com/sg-217/paisabuddy/internal/classify"
	"github.com/sg-217/paisabuddy/internal/store"
)

// LearnWorker consumes correction messages and folds them into the
// lexicon. Persistence happens before the in-memory swap so a crash
// between the two only loses the hot copy, which reloads on restart.
type LearnWorker struct {
	lexicon    store.LexiconStore
	classifier *classify.Classifier
}

func NewLearnWorker(lexicon store.LexiconStore, classifier *classify.Classifier) *LearnWorker {
	return &LearnWorker{
		lexicon:    lexicon,
		classifier: classifier,
	}
}

// HandleCorrection processes a single correction message.
func (w *LearnWorker) HandleCorrection(ctx context.Context, msg *amqp.CorrectionMessage) error {
	slog.InfoContext(ctx, "Processing correction",
		"user_id", msg.UserID,
		"category", msg.Category)

	if !msg.Category.Valid() {
		return fmt.Errorf("correction for unknown category %q", msg.Category)
	}

	keywords := append([]string{msg.Text}, msg.Keywords...)
	if err := w.lexicon.AddKeywords(ctx, msg.Category, keywords); err != nil {
		return fmt.Errorf("persist correction keywords: %w", err)
	}

	if !w.classifier.Learn(msg.Text, msg.Category, msg.Keywords...) {
		slog.WarnContext(ctx, "Classifier rejected correction",
			"category", msg.Category)
	}

	return nil
}

// Seed loads all persisted keywords into the classifier. Called once at
// startup before consuming.
func (w *LearnWorker) Seed(ctx context.Context) error {
	byCategory, err := w.lexicon.LoadKeywords(ctx)
	if err != nil {
		return fmt.Errorf("load persisted keywords: %w", err)
	}

	total := 0
	for cat, keywords := range byCategory {
		for _, kw := range keywords {
			if w.classifier.Learn(kw, cat) {
				total++
			}
		}
	}

	slog.InfoContext(ctx, "Seeded classifier from persisted lexicon",
		"categories", len(byCategory),
		"keywords", total)
	return nil
}
