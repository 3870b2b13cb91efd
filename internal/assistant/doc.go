// Package assistant turns free-form user requests into list and catalog
// operations using the language model.
//
// Interpreter classifies a command into a ListAction. Commander executes that
// action against the list service and the catalog, resolving list names
// case-insensitively and falling back to fuzzy matching. Curator asks the
// model for trending picks in a category and normalizes poster URLs and
// genres. Model failures never surface as errors: they degrade to an
// apology action or an empty result and are logged.
package assistant
