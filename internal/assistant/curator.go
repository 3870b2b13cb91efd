package assistant

import (
	"context"
	"log/slog"
	"strings"

	"bingeboard/internal/logging"
	"bingeboard/internal/media"
)

// PosterPlaceholder replaces poster URLs that are not absolute http(s) links.
const PosterPlaceholder = "https://placehold.co/240x360.png"

// CuratedRecommendation is a model-picked trending title.
type CuratedRecommendation struct {
	ID        media.ID `json:"id,omitempty"`
	Title     string   `json:"title"`
	PosterURL string   `json:"posterUrl"`
	Genre     string   `json:"genre"`
}

// Curator asks the model for trending picks.
type Curator struct {
	llm    Completer
	logger *slog.Logger
}

// NewCurator constructs a Curator.
func NewCurator(llm Completer, logger *slog.Logger) *Curator {
	return &Curator{llm: llm, logger: logging.NewComponentLogger(logger, "assistant")}
}

// CurateTrending returns recommendations for category (e.g. "movies",
// "anime"). Failures and empty output yield an empty slice.
func (c *Curator) CurateTrending(ctx context.Context, category string) []CuratedRecommendation {
	category = strings.TrimSpace(category)
	if category == "" || c.llm == nil || !c.llm.Configured() {
		return []CuratedRecommendation{}
	}
	c.logger.Info("curating trending content", logging.String("category", category))

	var payload struct {
		Recommendations []CuratedRecommendation `json:"recommendations"`
	}
	if err := c.llm.CompleteInto(ctx, curateSystemPrompt, "Category: "+category, &payload); err != nil {
		logging.WarnWithContext(c.logger, "trending curation failed", "assistant_curate_failed",
			logging.String("category", category),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no curated recommendations shown"),
		)
		return []CuratedRecommendation{}
	}
	if len(payload.Recommendations) == 0 {
		logging.WarnWithContext(c.logger, "model returned no recommendations", "assistant_curate_empty",
			logging.String("category", category),
			logging.String(logging.FieldImpact, "no curated recommendations shown"),
		)
		return []CuratedRecommendation{}
	}

	out := make([]CuratedRecommendation, 0, len(payload.Recommendations))
	for _, rec := range payload.Recommendations {
		rec.Title = strings.TrimSpace(rec.Title)
		if rec.Title == "" {
			continue
		}
		if !strings.HasPrefix(rec.PosterURL, "http") {
			rec.PosterURL = PosterPlaceholder
		}
		if strings.TrimSpace(rec.Genre) == "" {
			rec.Genre = media.UnknownGenre
		}
		out = append(out, rec)
	}
	return out
}
