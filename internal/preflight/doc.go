// Package preflight provides readiness checks for the data directory and
// the external services BingeBoard depends on.
//
// The CLI "bingeboard doctor" command runs RunAll with remote checks enabled,
// which makes one TMDB genre request and one single-attempt LLM health
// request. The HTTP server runs the local checks at startup and logs
// failures without refusing to start. YouTube and RapidAPI keys are optional;
// their absence passes with a note.
package preflight
