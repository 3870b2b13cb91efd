package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"bingeboard/internal/preflight"
)

type checkState int

const (
	checkPass checkState = iota
	checkWarn
	checkFail
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
)

const checkNameWidth = 16

func stateOf(r preflight.Result) checkState {
	switch {
	case !r.Passed:
		return checkFail
	case r.Warning:
		return checkWarn
	default:
		return checkPass
	}
}

func (s checkState) label() string {
	switch s {
	case checkFail:
		return "FAIL"
	case checkWarn:
		return "WARN"
	default:
		return "OK"
	}
}

func (s checkState) color() string {
	switch s {
	case checkFail:
		return ansiRed
	case checkWarn:
		return ansiYellow
	default:
		return ansiGreen
	}
}

// renderCheck formats one result as "  <name> [STATE] detail". Only the state
// tag is colored so details stay readable on light terminals.
func renderCheck(r preflight.Result, colorize bool) string {
	state := stateOf(r)
	tag := fmt.Sprintf("[%s]", state.label())
	if colorize {
		tag = state.color() + tag + ansiReset
	}
	line := fmt.Sprintf("  %-*s %s", checkNameWidth, r.Name, tag)
	if detail := strings.TrimSpace(r.Detail); detail != "" {
		line += " " + detail
	}
	return line
}

func renderDoctorHeader(configPath string, colorize bool) []string {
	title := "BingeBoard doctor"
	if colorize {
		title = ansiBold + title + ansiReset
	}
	lines := []string{title}
	if configPath != "" {
		lines = append(lines, "  config: "+configPath)
	}
	return append(lines, "")
}

func summarizeChecks(results []preflight.Result) (passed, warned, failed int) {
	for _, r := range results {
		switch stateOf(r) {
		case checkFail:
			failed++
		case checkWarn:
			warned++
		default:
			passed++
		}
	}
	return passed, warned, failed
}

func renderDoctorSummary(results []preflight.Result) string {
	passed, warned, failed := summarizeChecks(results)
	return fmt.Sprintf("%d ok, %d warning(s), %d failed", passed, warned, failed)
}

// colorEnabled honors NO_COLOR and only colors real terminals.
func colorEnabled(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
