package lists

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"bingeboard/internal/media"
)

const animationGenreID = 16

// Category groups list items for browsing.
type Category string

const (
	CategorySeries          Category = "series"
	CategoryAnimationMovies Category = "animation-movies"
	CategoryHollywoodMovies Category = "hollywood-movies"
	CategoryBollywoodMovies Category = "bollywood-movies"
	CategoryOtherMovies     Category = "other-movies"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategorySeries,
	CategoryAnimationMovies,
	CategoryHollywoodMovies,
	CategoryBollywoodMovies,
	CategoryOtherMovies,
}

// Title returns the display heading for c.
func (c Category) Title() string {
	switch c {
	case CategorySeries:
		return "Series"
	case CategoryAnimationMovies:
		return "Animation Movies"
	case CategoryHollywoodMovies:
		return "Hollywood Movies"
	case CategoryBollywoodMovies:
		return "Bollywood Movies"
	default:
		return "Other Movies"
	}
}

// CategoryOf classifies an item. TV is always series; animated movies win
// over language-based buckets.
func CategoryOf(item ListItem) Category {
	if item.MediaType == media.TV {
		return CategorySeries
	}
	switch {
	case item.HasGenre(animationGenreID):
		return CategoryAnimationMovies
	case item.OriginalLanguage == "en":
		return CategoryHollywoodMovies
	case item.OriginalLanguage == "hi":
		return CategoryBollywoodMovies
	default:
		return CategoryOtherMovies
	}
}

// Categorize buckets items, preserving input order within each bucket.
func Categorize(items []ListItem) map[Category][]ListItem {
	out := make(map[Category][]ListItem, len(Categories))
	for _, item := range items {
		c := CategoryOf(item)
		out[c] = append(out[c], item)
	}
	return out
}

// ItemFilter narrows a list view. Zero fields do not filter.
type ItemFilter struct {
	Search string
	Genre  string
	Rating *float64
	From   time.Time
	To     time.Time
}

// Filter applies f and returns matches newest addedAt first. Date bounds are
// inclusive whole days in the bound's location.
func Filter(items []ListItem, f ItemFilter) []ListItem {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var from, to int64
	if !f.From.IsZero() {
		from = startOfDay(f.From).UnixMilli()
	}
	if !f.To.IsZero() {
		to = endOfDay(f.To).UnixMilli()
	}

	out := make([]ListItem, 0, len(items))
	for _, item := range items {
		if search != "" && !strings.Contains(strings.ToLower(item.Title), search) {
			continue
		}
		if f.Genre != "" && item.Genre != f.Genre {
			continue
		}
		if f.Rating != nil {
			if item.UserRating == nil || formatRating(*item.UserRating) != formatRating(*f.Rating) {
				continue
			}
		}
		if from != 0 && item.AddedAt < from {
			continue
		}
		if to != 0 && item.AddedAt > to {
			continue
		}
		out = append(out, item)
	}
	slices.SortStableFunc(out, func(a, b ListItem) int {
		return compareDesc(a.AddedAt, b.AddedAt)
	})
	return out
}

// AvailableRatings returns the distinct ratings present in items, ascending.
func AvailableRatings(items []ListItem) []float64 {
	var out []float64
	for _, item := range items {
		if item.UserRating != nil && !slices.Contains(out, *item.UserRating) {
			out = append(out, *item.UserRating)
		}
	}
	slices.Sort(out)
	return out
}

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// MonthGroup is a set of items added in the same calendar month.
type MonthGroup struct {
	Month time.Time  `json:"month"`
	Label string     `json:"label"`
	Items []ListItem `json:"items"`
}

// GroupByMonth buckets items by the month of addedAt in loc, newest month first.
func GroupByMonth(items []ListItem, loc *time.Location) []MonthGroup {
	if loc == nil {
		loc = time.Local
	}
	index := map[time.Time]int{}
	var groups []MonthGroup
	for _, item := range items {
		if item.AddedAt == 0 {
			continue
		}
		added := time.UnixMilli(item.AddedAt).In(loc)
		month := time.Date(added.Year(), added.Month(), 1, 0, 0, 0, 0, loc)
		i, ok := index[month]
		if !ok {
			i = len(groups)
			index[month] = i
			groups = append(groups, MonthGroup{Month: month, Label: month.Format("January 2006")})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	slices.SortStableFunc(groups, func(a, b MonthGroup) int {
		return b.Month.Compare(a.Month)
	})
	return groups
}
