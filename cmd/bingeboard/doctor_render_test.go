package main

import (
	"io"
	"strings"
	"testing"

	"bingeboard/internal/preflight"
)

func TestRenderCheckStates(t *testing.T) {
	cases := []struct {
		result preflight.Result
		want   string
	}{
		{preflight.Result{Name: "Database", Passed: true, Detail: "/tmp/bb.db"}, "[OK] /tmp/bb.db"},
		{preflight.Result{Name: "YouTube", Passed: true, Warning: true, Detail: "not configured"}, "[WARN] not configured"},
		{preflight.Result{Name: "TMDB", Detail: "API key missing"}, "[FAIL] API key missing"},
	}
	for _, tc := range cases {
		got := renderCheck(tc.result, false)
		if !strings.HasPrefix(got, "  "+tc.result.Name) || !strings.HasSuffix(got, tc.want) {
			t.Fatalf("renderCheck(%s) = %q, want suffix %q", tc.result.Name, got, tc.want)
		}
	}
}

func TestRenderCheckColorsOnlyTag(t *testing.T) {
	got := renderCheck(preflight.Result{Name: "TMDB", Detail: "rejected"}, true)
	if !strings.Contains(got, ansiRed+"[FAIL]"+ansiReset) {
		t.Fatalf("expected red tag, got %q", got)
	}
	if !strings.HasSuffix(got, " rejected") {
		t.Fatalf("detail should stay uncolored, got %q", got)
	}
}

func TestRenderDoctorSummary(t *testing.T) {
	results := []preflight.Result{
		{Name: "a", Passed: true},
		{Name: "b", Passed: true, Warning: true},
		{Name: "c"},
	}
	if got := renderDoctorSummary(results); got != "1 ok, 1 warning(s), 1 failed" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestColorEnabledNonFile(t *testing.T) {
	if colorEnabled(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRatingAndYearFormatting(t *testing.T) {
	if got := formatRating(nil); got != "-" {
		t.Fatalf("formatRating(nil) = %q", got)
	}
	v := 3.5
	if got := formatRating(&v); got != "3.5" {
		t.Fatalf("formatRating(3.5) = %q", got)
	}
	if got := releaseYear("", "2011-04-17"); got != "2011" {
		t.Fatalf("releaseYear = %q", got)
	}
	if _, err := parseRating("6"); err == nil {
		t.Fatal("expected rating above 5 to fail")
	}
	if update, err := parseRating(""); err != nil || update.IsSet() {
		t.Fatalf("empty rating should leave the value untouched: %+v %v", update, err)
	}
}
