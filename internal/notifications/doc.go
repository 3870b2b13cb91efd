// Package notifications delivers operator alerts through ntfy.
//
// The only event today is a new feedback submission. NewService returns a
// no-op implementation when no topic is configured, so callers never need to
// check whether notifications are enabled.
package notifications
