// Package config loads BingeBoard settings from TOML.
//
// Load resolves the file (flag, ~/.config/bingeboard/config.toml, then
// ./bingeboard.toml), layers it over Default, expands "~" in paths, fills API
// keys from TMDB_API_KEY, YOUTUBE_API_KEY, OPENROUTER_API_KEY and
// RAPIDAPI_IMDB_KEY when the file leaves them blank, and validates the result.
// A missing TMDB key is reported through TMDBKey rather than failing Load.
package config
