package lists

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"bingeboard/internal/logging"
	"bingeboard/internal/validation"
)

const (
	importNamePrefix  = "Imported: "
	importNameMaxRune = 50

	errInvalidJSON   = "Invalid JSON format. Please check the provided data."
	errInvalidFormat = "Invalid list format. Must contain 'name' (string) and 'items' (array)."
	errReservedName  = "The name \"Interested\" is reserved. Choose another name for the imported list."
	errInvalidItem   = "Invalid item structure. Ensure items have id, title, media_type, posterUrl, genre, genre_ids, and addedAt."
)

// ImportResult is either a created list or an error message for the user.
type ImportResult struct {
	List *UserList `json:"list,omitempty"`
	Err  string    `json:"error,omitempty"`
}

// OK reports whether the import succeeded.
func (r ImportResult) OK() bool { return r.Err == "" && r.List != nil }

type exportedList struct {
	Name  string     `json:"name"`
	Items []ListItem `json:"items"`
}

// ExportListToJSON serializes a list without its id, creation time, or pin
// state. ok is false when the list does not exist. The Interested list is not
// exportable.
func (s *Service) ExportListToJSON(ctx context.Context, listID string) (string, bool, error) {
	list, err := s.GetListByID(ctx, listID)
	if err != nil || list == nil {
		return "", false, err
	}
	if list.IsInterested() {
		return "", false, ErrReservedList
	}
	items := list.Items
	if items == nil {
		items = []ListItem{}
	}
	data, err := json.MarshalIndent(exportedList{Name: list.Name, Items: items}, "", "  ")
	if err != nil {
		return "", false, fmt.Errorf("encode export: %w", err)
	}
	return string(data), true, nil
}

type importEnvelope struct {
	Name  *string `json:"name" validate:"required"`
	Items []any   `json:"items" validate:"required"`
}

type importItemShape struct {
	ID        *string  `json:"id" validate:"required"`
	Title     *string  `json:"title" validate:"required"`
	MediaType *string  `json:"media_type" validate:"required,oneof=movie tv"`
	PosterURL *string  `json:"posterUrl" validate:"required"`
	Genre     *string  `json:"genre" validate:"required"`
	GenreIDs  []any    `json:"genre_ids" validate:"required"`
	AddedAt   *float64 `json:"addedAt" validate:"required"`
}

func stringField(m map[string]any, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func shapeOf(m map[string]any) importItemShape {
	shape := importItemShape{
		Title:     stringField(m, "title"),
		MediaType: stringField(m, "media_type"),
		PosterURL: stringField(m, "posterUrl"),
		Genre:     stringField(m, "genre"),
	}
	switch id := m["id"].(type) {
	case string:
		shape.ID = &id
	case float64:
		text := strconv.FormatFloat(id, 'f', -1, 64)
		shape.ID = &text
	}
	if ids, ok := m["genre_ids"].([]any); ok {
		shape.GenreIDs = ids
	}
	if added, ok := m["addedAt"].(float64); ok {
		shape.AddedAt = &added
	}
	return shape
}

// ImportListFromJSON validates an exported document and prepends it as a new
// unpinned list. Without nameOverride the list is named "Imported: <name>"
// truncated to 50 characters. Validation failures are reported in the result.
func (s *Service) ImportListFromJSON(ctx context.Context, payload, nameOverride string) ImportResult {
	if !json.Valid([]byte(payload)) {
		return s.importFailed(errInvalidJSON, fmt.Errorf("payload of %d bytes is not valid JSON", len(payload)))
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return s.importFailed(errInvalidFormat, err)
	}

	envelope := importEnvelope{Name: stringField(doc, "name")}
	if items, ok := doc["items"].([]any); ok {
		envelope.Items = items
	}
	if err := validation.Struct(&envelope); err != nil {
		return s.importFailed(errInvalidFormat, err)
	}
	for _, raw := range envelope.Items {
		m, ok := raw.(map[string]any)
		if !ok {
			return s.importFailed(errInvalidItem, fmt.Errorf("item is %T, not an object", raw))
		}
		shape := shapeOf(m)
		if err := validation.Struct(&shape); err != nil {
			return s.importFailed(errInvalidItem, err)
		}
	}

	var typed struct {
		Items []ListItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(payload), &typed); err != nil {
		return s.importFailed(errInvalidItem, err)
	}

	name := normalizeImportName(*envelope.Name, nameOverride)
	if isReservedName(name) {
		return s.importFailed(errReservedName, fmt.Errorf("import named %q", name))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok := s.load(ctx)
	if !ok {
		return ImportResult{Err: "Failed to import list: storage is unavailable."}
	}
	created := UserList{
		ID:        s.newID(),
		Name:      name,
		Items:     dedupeItems(typed.Items),
		CreatedAt: s.nowMillis(),
	}
	for i := range created.Items {
		if created.Items[i].GenreIDs == nil {
			created.Items[i].GenreIDs = []int{}
		}
	}
	lists = append([]UserList{created}, lists...)
	if err := s.commit(ctx, "import", lists); err != nil {
		return ImportResult{Err: "Failed to import list: " + err.Error()}
	}
	s.logger.Info("list imported",
		logging.ListID(created.ID),
		logging.String("list_name", created.Name),
		logging.Int("item_count", len(created.Items)),
	)
	return ImportResult{List: &created}
}

func (s *Service) importFailed(message string, cause error) ImportResult {
	logging.WarnWithContext(s.logger, "list import rejected", "list_import_invalid",
		logging.Error(cause),
		logging.String("reason", message),
		logging.String(logging.FieldImpact, "no list created"),
	)
	return ImportResult{Err: message}
}

func normalizeImportName(name, override string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	full := importNamePrefix + name
	if utf8.RuneCountInString(full) <= importNameMaxRune {
		return full
	}
	return string([]rune(full)[:importNameMaxRune])
}
