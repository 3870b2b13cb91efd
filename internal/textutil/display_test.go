package textutil

import "testing"

func TestEqualFold(t *testing.T) {
	if !EqualFold("  Watch Later ", "watch later") {
		t.Fatal("expected case-insensitive match")
	}
	if EqualFold("Watch Later", "Watch Laterr") {
		t.Fatal("unexpected match")
	}
}

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"hollywood-movies": "Hollywood Movies",
		"trending_tv":      "Trending Tv",
		"anime":            "Anime",
	}
	for in, want := range tests {
		if got := Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := map[string]string{
		"My Horror List!":     "my_horror_list",
		"  ":                  "unknown",
		"---":                 "unknown",
		"Sci-Fi_2024":         "sci-fi_2024",
		"Imported: Amélie  ∞": "imported_amélie",
		"Weekend // Picks":    "weekend_picks",
	}
	for in, want := range tests {
		if got := SanitizeToken(in); got != want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", in, got, want)
		}
	}
}
