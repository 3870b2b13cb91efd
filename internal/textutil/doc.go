// Package textutil provides text helpers for fuzzy name matching and display.
//
// Names are compared as term vectors of case-folded tokens using cosine
// similarity. BestMatch weights terms by inverse document frequency across the
// candidate set, so words shared by many list names ("list", "movies") count
// for less than distinctive ones.
package textutil
