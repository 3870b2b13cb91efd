// Package logs reads the BingeBoard log file for `bingeboard logs`.
//
// It returns the last N lines with bounded memory, resumes from a byte
// offset, and polls for appended lines in follow mode until the caller's
// context ends. Both the console and JSON log formats can be filtered by
// minimum level.
package logs
