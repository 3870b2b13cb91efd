package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc"

	"bingeboard/internal/logging"
	"bingeboard/internal/media"
	"bingeboard/internal/tmdb"
)

const (
	marvelStudiosCompanyID = "420"
	mcuKeywordID           = "180547"
)

var mcuAliases = map[string]bool{
	"marvel":                    true,
	"mcu":                       true,
	"marvel cinematic universe": true,
}

// studioCompanies maps lower-cased queries to TMDB company names.
var studioCompanies = map[string]string{
	"marvel":                    "Marvel Studios",
	"mcu":                       "Marvel Studios",
	"marvel cinematic universe": "Marvel Studios",
	"dc":                        "DC Entertainment",
	"dc comics":                 "DC Comics",
	"pixar":                     "Pixar",
	"disney":                    "Walt Disney Pictures",
	"walt disney":               "Walt Disney Pictures",
	"warner bros":               "Warner Bros. Pictures",
	"warner brothers":           "Warner Bros. Pictures",
	"dreamworks":                "DreamWorks Animation",
	"sony pictures":             "Sony Pictures",
	"columbia pictures":         "Columbia Pictures",
	"universal pictures":        "Universal Pictures",
	"paramount":                 "Paramount",
	"paramount pictures":        "Paramount",
	"20th century studios":      "20th Century Studios",
	"20th century fox":          "20th Century Fox",
	"lionsgate":                 "Lionsgate",
	"a24":                       "A24",
}

// Search finds movies and series for query.
func (s *Service) Search(ctx context.Context, query string) []media.Recommendation {
	query = strings.TrimSpace(query)
	if query == "" || !s.available() {
		return []media.Recommendation{}
	}
	s.ensureGenres(ctx, media.Movie)
	s.ensureGenres(ctx, media.TV)
	normalized := strings.ToLower(query)

	if mcuAliases[normalized] {
		results := s.discoverBoth(ctx, tmdb.DiscoverOptions{Companies: marvelStudiosCompanyID, Keywords: mcuKeywordID})
		if len(results) > 0 {
			return results
		}
		s.logger.Debug("mcu search empty; falling back", logging.String("query", query))
	}

	if company, ok := studioCompanies[normalized]; ok {
		if results := s.searchStudio(ctx, company); len(results) > 0 {
			return results
		}
		s.logger.Debug("studio search empty; falling back", logging.String("query", query), logging.String("company", company))
	}

	return s.searchMulti(ctx, query, normalized)
}

func (s *Service) searchStudio(ctx context.Context, company string) []media.Recommendation {
	page, err := s.tmdb.SearchCompany(ctx, company)
	if err != nil {
		s.warn("company search failed", "company_search", err, logging.String("company", company))
		return nil
	}
	if page == nil || len(page.Results) == 0 {
		return nil
	}
	match := page.Results[0]
	for _, candidate := range page.Results {
		if strings.EqualFold(candidate.Name, company) {
			match = candidate
			break
		}
	}
	return s.discoverBoth(ctx, tmdb.DiscoverOptions{Companies: strconv.FormatInt(match.ID, 10)})
}

// discoverBoth runs movie and TV discovery concurrently and merges the
// results, de-duplicated by (id, media_type) and ordered by popularity.
func (s *Service) discoverBoth(ctx context.Context, opts tmdb.DiscoverOptions) []media.Recommendation {
	var movies, series []media.Recommendation
	var wg conc.WaitGroup
	wg.Go(func() { movies = s.discover(ctx, media.Movie, opts) })
	wg.Go(func() { series = s.discover(ctx, media.TV, opts) })
	wg.Wait()

	seen := make(map[media.Key]bool, len(movies)+len(series))
	merged := make([]media.Recommendation, 0, len(movies)+len(series))
	for _, rec := range append(movies, series...) {
		if seen[rec.Key()] {
			continue
		}
		seen[rec.Key()] = true
		merged = append(merged, rec)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Popularity > merged[j].Popularity })
	return merged
}

func (s *Service) searchMulti(ctx context.Context, query, normalized string) []media.Recommendation {
	page, err := s.tmdb.SearchMulti(ctx, query)
	if err != nil {
		s.warn("multi search failed", "multi_search", err, logging.String("query", query))
		return []media.Recommendation{}
	}
	mapped := s.mapPage(page, "")

	var exact, rest []media.Recommendation
	for _, rec := range mapped {
		if strings.ToLower(rec.Title) == normalized {
			exact = append(exact, rec)
		} else {
			rest = append(rest, rec)
		}
	}
	sort.SliceStable(exact, func(i, j int) bool { return exact[i].Popularity > exact[j].Popularity })
	return append(append(make([]media.Recommendation, 0, len(mapped)), exact...), rest...)
}
