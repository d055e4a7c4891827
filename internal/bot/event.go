package bot

import (
	"errors"
	"strconv"
	"strings"

	"github.com/avdeeva/task-tracker-bot/internal/model"
)

// EventKind distinguishes the three things the transport can deliver.
type EventKind int

const (
	// EventCommand is a named command, e.g. "/addtask".
	EventCommand EventKind = iota
	// EventText is a free-text message.
	EventText
	// EventCallback is a button press with an opaque payload.
	EventCallback
)

// Event is one inbound user interaction, normalized at the transport
// boundary.
type Event struct {
	Kind EventKind

	// User is the transport-provided identity of the sender.
	User model.User

	// Command is the command name without the leading slash
	// (EventCommand only).
	Command string

	// Text is the message body (EventText only).
	Text string

	// Callback is the raw button payload (EventCallback only).
	Callback string
}

// ActionKind is a task action requested through a button press.
type ActionKind int

const (
	ActionDone ActionKind = iota
	ActionDelete
	ActionRestore
)

// Action is a decoded task-action callback: what to do and to which
// task. Ownership is checked by the store, never trusted from the
// payload.
type Action struct {
	Kind   ActionKind
	TaskID int64
}

// ErrInvalidCallback reports a button payload that is not a known
// task action.
var ErrInvalidCallback = errors.New("invalid callback payload")

// actionPrefixes maps the wire prefix of a task-action payload to its
// action kind.
var actionPrefixes = map[string]ActionKind{
	"done_":    ActionDone,
	"delete_":  ActionDelete,
	"restore_": ActionRestore,
}

// ParseAction decodes a "{tag}_{task_id}" button payload into a typed
// action. Payloads with an unknown tag or a malformed id fail with
// ErrInvalidCallback.
func ParseAction(data string) (Action, error) {
	for prefix, kind := range actionPrefixes {
		rest, ok := strings.CutPrefix(data, prefix)
		if !ok {
			continue
		}

		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || id <= 0 {
			return Action{}, ErrInvalidCallback
		}
		return Action{Kind: kind, TaskID: id}, nil
	}

	return Action{}, ErrInvalidCallback
}
