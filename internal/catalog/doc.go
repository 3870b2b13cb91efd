// Package catalog normalizes TMDB and IMDb responses into media.Recommendation
// values and detail views.
//
// The Service is constructed explicitly from configuration and warmed with
// Init, which loads the movie and TV genre lists into a GenreCache. Feed,
// search and detail lookups never surface upstream failures to callers:
// errors are logged with WarnWithContext and mapped to empty results, so a
// missing or broken TMDB key degrades the app to empty shelves rather than
// failing requests.
//
// Search applies three heuristics in order: Marvel Cinematic Universe aliases
// run a company+keyword discover, known studio names resolve a production
// company and discover its movies and series, and everything else uses multi
// search with exact title matches ranked first.
package catalog
