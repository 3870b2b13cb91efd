// Package media defines the catalog value types shared by the list layer, the
// metadata client, and the assistant: normalized recommendations, genres, and
// per-season TV watch progress.
package media
