package assistant

import (
	"context"
	"log/slog"
	"strings"

	"bingeboard/internal/logging"
)

// ActionType is the interpreted intent of a list command.
type ActionType string

const (
	CreateList        ActionType = "CREATE_LIST"
	AddItemToList     ActionType = "ADD_ITEM_TO_LIST"
	GetListContents   ActionType = "GET_LIST_CONTENTS"
	SearchItemInList  ActionType = "SEARCH_ITEM_IN_LIST"
	NoActionConfusion ActionType = "NO_ACTION_CONFUSION"
	NoActionInfo      ActionType = "NO_ACTION_INFO"
	NoActionUnknown   ActionType = "NO_ACTION_UNKNOWN"
)

// Valid reports whether t is one of the known action types.
func (t ActionType) Valid() bool {
	switch t {
	case CreateList, AddItemToList, GetListContents, SearchItemInList,
		NoActionConfusion, NoActionInfo, NoActionUnknown:
		return true
	}
	return false
}

// IsNoAction reports whether t carries only a reply for the user.
func (t ActionType) IsNoAction() bool {
	return t == NoActionConfusion || t == NoActionInfo || t == NoActionUnknown
}

// UnexpectedIssueMessage is returned when the model fails or answers with
// something unusable.
const UnexpectedIssueMessage = "Sorry, I encountered an unexpected issue processing your command. Please try again."

// ListAction is the structured form of a list command.
type ListAction struct {
	ActionType  ActionType `json:"actionType"`
	ListName    string     `json:"listName,omitempty"`
	ItemName    string     `json:"itemName,omitempty"`
	LLMResponse string     `json:"llmResponse,omitempty"`
}

// Completer is the model surface the assistant depends on.
type Completer interface {
	Configured() bool
	CompleteInto(ctx context.Context, systemPrompt, userPrompt string, target any) error
}

// Interpreter parses natural language list commands.
type Interpreter struct {
	llm    Completer
	logger *slog.Logger
}

// NewInterpreter constructs an Interpreter.
func NewInterpreter(llm Completer, logger *slog.Logger) *Interpreter {
	return &Interpreter{llm: llm, logger: logging.NewComponentLogger(logger, "assistant")}
}

// InterpretListCommand classifies text. It never fails: model errors, empty
// output and unknown action types yield NO_ACTION_UNKNOWN with an apology.
func (i *Interpreter) InterpretListCommand(ctx context.Context, text string) ListAction {
	text = strings.TrimSpace(text)
	if text == "" {
		return ListAction{ActionType: NoActionConfusion, LLMResponse: "Please type a command, for example 'Create a list called Watch Later'."}
	}
	if i.llm == nil || !i.llm.Configured() {
		logging.WarnWithContext(i.logger, "assistant model not configured", "assistant_unconfigured",
			logging.String(logging.FieldErrorHint, "set llm.api_key or OPENROUTER_API_KEY"),
			logging.String(logging.FieldImpact, "list commands are not interpreted"),
		)
		return unknownAction()
	}

	var action ListAction
	if err := i.llm.CompleteInto(ctx, interpretSystemPrompt, "User Command: "+text, &action); err != nil {
		logging.WarnWithContext(i.logger, "list command interpretation failed", "assistant_interpret_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the model endpoint and key with bingeboard doctor"),
			logging.String(logging.FieldImpact, "command answered with a generic apology"),
		)
		return unknownAction()
	}
	action.ActionType = ActionType(strings.ToUpper(strings.TrimSpace(string(action.ActionType))))
	action.ListName = strings.TrimSpace(action.ListName)
	action.ItemName = strings.TrimSpace(action.ItemName)
	action.LLMResponse = strings.TrimSpace(action.LLMResponse)
	if !action.ActionType.Valid() {
		logging.WarnWithContext(i.logger, "model returned unknown action type", "assistant_unknown_action",
			logging.String("action_type", string(action.ActionType)),
			logging.String(logging.FieldImpact, "command answered with a generic apology"),
		)
		return unknownAction()
	}
	i.logger.Debug("list command interpreted",
		logging.String("action_type", string(action.ActionType)),
		logging.String("list_name", action.ListName),
		logging.String("item_name", action.ItemName),
	)
	return action
}

func unknownAction() ListAction {
	return ListAction{ActionType: NoActionUnknown, LLMResponse: UnexpectedIssueMessage}
}
