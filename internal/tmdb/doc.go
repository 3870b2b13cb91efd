// Package tmdb provides the raw TMDB v3 API client used by the catalog.
//
// It authenticates requests with an api_key query parameter and exposes genre
// lists, trending and now-playing feeds, discover queries, multi and company
// search, movie/TV details, credits, season details, watch providers and
// images. Responses are decoded into loosely typed structs mirroring the TMDB
// payloads; normalization into domain types happens in the catalog package.
//
// Every request passes through a token bucket limiter and a circuit breaker,
// and its latency and outcome are exported through the metrics package.
package tmdb
