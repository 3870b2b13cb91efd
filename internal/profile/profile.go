// Package profile stores the user's bio and cover art preference.
package profile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"bingeboard/internal/store"
)

const (
	BioKey         = "bingeBoardUserProfileBio"
	CoverURLKey    = "bingeBoardUserProfileCoverArtUrl"
	PresetCoverKey = "bingeBoardUserPresetCoverImages"

	// DefaultPreset is shown when nothing else is selected.
	DefaultPreset = "default_cover"
)

// Preset is a built-in cover image.
type Preset struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Hint string `json:"hint"`
}

var presets = map[string]Preset{
	"default_cover":   {Name: "Default Abstract", URL: "/cover/default.png", Hint: "default background"},
	"abstract_purple": {Name: "Cinema Hall", URL: "https://images.unsplash.com/photo-1595769816263-9b910be24d5f?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&q=80&w=1080", Hint: "cinema hall"},
	"sci_fi_theme":    {Name: "Sci-Fi Theme", URL: "/cover/c1.jpg", Hint: "sci-fi spaceship"},
	"fantasy_world":   {Name: "Fantasy World", URL: "/cover/c2.jpg", Hint: "fantasy landscape"},
	"horror_night":    {Name: "Horror Night", URL: "/cover/c3.jpg", Hint: "scary forest"},
	"movie_theater":   {Name: "Movie Theater Seats", URL: "/cover/c5.jpg", Hint: "cinema seats"},
	"film_reel":       {Name: "Film Reel Collage", URL: "/cover/c6.jpg", Hint: "film reel"},
	"space_nebula":    {Name: "Space Nebula", URL: "/cover/c7.jpg", Hint: "galaxy stars"},
	"vintage_popcorn": {Name: "Vintage Popcorn", URL: "/cover/c8.jpg", Hint: "popcorn bucket"},
}

// Presets returns the built-in covers sorted by key.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for key, p := range presets {
		p.Key = key
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// LookupPreset returns the preset for key.
func LookupPreset(key string) (Preset, bool) {
	p, ok := presets[key]
	p.Key = key
	return p, ok
}

// ErrUnknownPreset is returned for keys outside the preset table.
var ErrUnknownPreset = errors.New("unknown cover preset")

// KV is the subset of the store used for profile settings.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Service reads and writes profile settings.
type Service struct {
	kv KV
}

// NewService constructs a Service.
func NewService(kv KV) *Service {
	return &Service{kv: kv}
}

// Profile is the full profile view.
type Profile struct {
	Bio               string `json:"bio"`
	CoverArtURL       string `json:"coverArtUrl,omitempty"`
	PresetCoverKey    string `json:"selectedPresetCoverKey,omitempty"`
	EffectiveCoverURL string `json:"effectiveCoverUrl"`
}

func (s *Service) get(ctx context.Context, key string) (string, error) {
	value, err := s.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

// Bio returns the stored bio, empty when unset.
func (s *Service) Bio(ctx context.Context) (string, error) {
	return s.get(ctx, BioKey)
}

// SetBio stores bio verbatim.
func (s *Service) SetBio(ctx context.Context, bio string) error {
	return s.kv.Put(ctx, BioKey, bio)
}

// CoverPhotoURL returns the custom cover URL, empty when unset.
func (s *Service) CoverPhotoURL(ctx context.Context) (string, error) {
	return s.get(ctx, CoverURLKey)
}

// SetCoverPhotoURL stores a custom cover and clears any preset selection.
func (s *Service) SetCoverPhotoURL(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return s.ClearCoverArt(ctx)
	}
	if err := s.kv.Put(ctx, CoverURLKey, url); err != nil {
		return err
	}
	return s.kv.Delete(ctx, PresetCoverKey)
}

// PresetCoverKey returns the selected preset key, empty when unset.
func (s *Service) PresetCoverKey(ctx context.Context) (string, error) {
	return s.get(ctx, PresetCoverKey)
}

// SetPresetCoverKey selects a preset and clears any custom URL.
func (s *Service) SetPresetCoverKey(ctx context.Context, key string) error {
	if _, ok := presets[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}
	if err := s.kv.Put(ctx, PresetCoverKey, key); err != nil {
		return err
	}
	return s.kv.Delete(ctx, CoverURLKey)
}

// ClearCoverArt removes both the custom URL and the preset selection.
func (s *Service) ClearCoverArt(ctx context.Context) error {
	if err := s.kv.Delete(ctx, CoverURLKey); err != nil {
		return err
	}
	return s.kv.Delete(ctx, PresetCoverKey)
}

// EffectiveCoverURL resolves custom URL, then a known preset, then the default preset.
func (s *Service) EffectiveCoverURL(ctx context.Context) (string, error) {
	custom, err := s.CoverPhotoURL(ctx)
	if err != nil {
		return "", err
	}
	if custom != "" {
		return custom, nil
	}
	key, err := s.PresetCoverKey(ctx)
	if err != nil {
		return "", err
	}
	if p, ok := presets[key]; ok {
		return p.URL, nil
	}
	return presets[DefaultPreset].URL, nil
}

// Get returns the full profile.
func (s *Service) Get(ctx context.Context) (Profile, error) {
	var p Profile
	var err error
	if p.Bio, err = s.Bio(ctx); err != nil {
		return Profile{}, err
	}
	if p.CoverArtURL, err = s.CoverPhotoURL(ctx); err != nil {
		return Profile{}, err
	}
	if p.PresetCoverKey, err = s.PresetCoverKey(ctx); err != nil {
		return Profile{}, err
	}
	if p.EffectiveCoverURL, err = s.EffectiveCoverURL(ctx); err != nil {
		return Profile{}, err
	}
	return p, nil
}
