// Command bingeboard manages watch lists, browses the TMDB catalog, talks to
// the list assistant, and serves the HTTP API.
//
// Global flags:
//
//	-c, --config   configuration file path
//	    --json     emit machine-readable JSON instead of tables
package main
