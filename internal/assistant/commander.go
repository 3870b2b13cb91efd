package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bingeboard/internal/lists"
	"bingeboard/internal/logging"
	"bingeboard/internal/media"
	"bingeboard/internal/metrics"
	"bingeboard/internal/textutil"
)

// minNameScore is the lowest fingerprint similarity accepted when a list or
// item name does not match exactly.
const minNameScore = 0.5

const (
	missingListNameMessage = "The assistant suggested creating a list, but a name wasn't specified. Please try again, e.g., 'Create a list called Action Movies'."
	rephraseMessage        = "I received your command, but I'm not sure what action to take. Could you try rephrasing?"
	missingTargetMessage   = "Please name both the title and the list, e.g., 'Add Inception to Favorites'."
	reservedListMessage    = "\"Interested\" is reserved for upcoming titles. Please pick another list name."
)

// ListManager is the subset of lists.Service the commander drives.
type ListManager interface {
	GetLists(ctx context.Context) ([]lists.UserList, error)
	CreateList(ctx context.Context, name string) ([]lists.UserList, error)
	AddItemToList(ctx context.Context, listID string, rec media.Recommendation, opts lists.AddOptions) ([]lists.UserList, error)
}

// Searcher finds catalog items by free text.
type Searcher interface {
	Search(ctx context.Context, query string) []media.Recommendation
}

// Outcome is the result of executing a command.
type Outcome struct {
	Action  ListAction       `json:"action"`
	Message string           `json:"message"`
	List    *lists.UserList  `json:"list,omitempty"`
	Items   []lists.ListItem `json:"items,omitempty"`
	Found   *bool            `json:"found,omitempty"`
}

// Commander interprets a command and applies it.
type Commander struct {
	interpreter *Interpreter
	lists       ListManager
	catalog     Searcher
	logger      *slog.Logger
}

// NewCommander constructs a Commander.
func NewCommander(interpreter *Interpreter, lists ListManager, catalog Searcher, logger *slog.Logger) *Commander {
	return &Commander{
		interpreter: interpreter,
		lists:       lists,
		catalog:     catalog,
		logger:      logging.NewComponentLogger(logger, "assistant"),
	}
}

// Execute interprets text and performs the resulting action. Errors are
// returned only for list storage failures.
func (c *Commander) Execute(ctx context.Context, text string) (Outcome, error) {
	action := c.interpreter.InterpretListCommand(ctx, text)
	metrics.AssistantActions.WithLabelValues(string(action.ActionType)).Inc()
	out := Outcome{Action: action}
	if action.ActionType.IsNoAction() {
		out.Message = firstNonEmpty(action.LLMResponse, rephraseMessage)
		return out, nil
	}

	switch action.ActionType {
	case CreateList:
		if action.ListName == "" {
			out.Message = firstNonEmpty(action.LLMResponse, missingListNameMessage)
			return out, nil
		}
		all, err := c.lists.CreateList(ctx, action.ListName)
		if errors.Is(err, lists.ErrReservedList) {
			out.Message = reservedListMessage
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("create list: %w", err)
		}
		out.List = newestNamed(all, action.ListName)
		out.Message = fmt.Sprintf("List %q has been successfully created.", action.ListName)
		return out, nil

	case AddItemToList:
		return c.addItem(ctx, out)

	case GetListContents:
		list, msg, err := c.resolveList(ctx, action.ListName)
		if err != nil || list == nil {
			out.Message = firstNonEmpty(msg, action.LLMResponse)
			return out, err
		}
		out.List = list
		out.Items = list.Items
		if len(list.Items) == 0 {
			out.Message = fmt.Sprintf("%q is empty.", list.Name)
		} else {
			out.Message = fmt.Sprintf("%q has %d %s.", list.Name, len(list.Items), plural(len(list.Items), "item", "items"))
		}
		return out, nil

	case SearchItemInList:
		if action.ItemName == "" {
			out.Message = firstNonEmpty(action.LLMResponse, missingTargetMessage)
			return out, nil
		}
		list, msg, err := c.resolveList(ctx, action.ListName)
		if err != nil || list == nil {
			out.Message = firstNonEmpty(msg, action.LLMResponse)
			return out, err
		}
		out.List = list
		item, found := findItemByTitle(list.Items, action.ItemName)
		out.Found = &found
		if found {
			out.Items = []lists.ListItem{item}
			out.Message = fmt.Sprintf("%q is in %q.", item.Title, list.Name)
		} else {
			out.Message = fmt.Sprintf("%q is not in %q.", action.ItemName, list.Name)
		}
		return out, nil

	default:
		out.Message = firstNonEmpty(action.LLMResponse, rephraseMessage)
		return out, nil
	}
}

func (c *Commander) addItem(ctx context.Context, out Outcome) (Outcome, error) {
	action := out.Action
	if action.ItemName == "" || action.ListName == "" {
		out.Message = firstNonEmpty(action.LLMResponse, missingTargetMessage)
		return out, nil
	}
	list, msg, err := c.resolveList(ctx, action.ListName)
	if err != nil || list == nil {
		out.Message = msg
		return out, err
	}
	out.List = list

	results := c.catalog.Search(ctx, action.ItemName)
	if len(results) == 0 {
		out.Message = fmt.Sprintf("I couldn't find %q in the catalog.", action.ItemName)
		return out, nil
	}
	rec := results[0]
	all, err := c.lists.AddItemToList(ctx, list.ID, rec, lists.AddOptions{})
	if err != nil {
		return out, fmt.Errorf("add item to list: %w", err)
	}
	for i := range all {
		if all[i].ID == list.ID {
			updated := all[i]
			out.List = &updated
			break
		}
	}
	if item, ok := out.List.Find(rec.ID, rec.MediaType); ok {
		out.Items = []lists.ListItem{item}
	}
	c.logger.Info("assistant added item",
		logging.ListID(list.ID),
		logging.ItemID(rec.ID.String()),
		logging.MediaType(rec.MediaType),
	)
	out.Message = fmt.Sprintf("Added %q to %q.", rec.Title, list.Name)
	return out, nil
}

// resolveList finds an editable list by name: exact case-insensitive match
// first, then the best fingerprint match. A nil list comes with a message for
// the user.
func (c *Commander) resolveList(ctx context.Context, name string) (*lists.UserList, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "Which list do you mean? Please include the list name.", nil
	}
	all, err := c.lists.GetLists(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load lists: %w", err)
	}
	candidates := lists.EditableLists(all)
	for i := range candidates {
		if textutil.EqualFold(candidates[i].Name, name) {
			return &candidates[i], "", nil
		}
	}
	names := make([]string, len(candidates))
	for i, l := range candidates {
		names[i] = l.Name
	}
	if match, ok := textutil.BestMatch(name, names, minNameScore); ok {
		return &candidates[match.Index], "", nil
	}
	return nil, fmt.Sprintf("I couldn't find a list named %q.", name), nil
}

func findItemByTitle(items []lists.ListItem, title string) (lists.ListItem, bool) {
	titles := make([]string, len(items))
	for i, item := range items {
		if textutil.EqualFold(item.Title, title) {
			return item, true
		}
		titles[i] = item.Title
	}
	if match, ok := textutil.BestMatch(title, titles, minNameScore); ok {
		return items[match.Index], true
	}
	return lists.ListItem{}, false
}

func newestNamed(all []lists.UserList, name string) *lists.UserList {
	var found *lists.UserList
	for i := range all {
		if all[i].Name != name {
			continue
		}
		if found == nil || all[i].CreatedAt > found.CreatedAt {
			found = &all[i]
		}
	}
	return found
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
