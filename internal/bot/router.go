// Package bot holds the transport-agnostic core of the task tracker:
// inbound events, the dispatch logic that routes them through the
// conversation state machine and the store, and the reply content
// handed back for rendering.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avdeeva/task-tracker-bot/internal/deadline"
	"github.com/avdeeva/task-tracker-bot/internal/model"
	"github.com/avdeeva/task-tracker-bot/internal/session"
	"github.com/avdeeva/task-tracker-bot/internal/store"
)

// Router dispatches inbound events to command handlers, dialog steps,
// and task-action handlers. A nil reply means the event produced no
// user-visible response; unrecognized input is dropped silently.
type Router struct {
	store    store.Store
	sessions *session.Manager
	log      *slog.Logger

	// now is injectable so deadline parsing is deterministic in tests.
	now func() time.Time
}

// NewRouter wires the router to its collaborators.
func NewRouter(st store.Store, sessions *session.Manager, log *slog.Logger) *Router {
	return &Router{
		store:    st,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

// Dispatch handles one event end to end. The user's session lock is
// held for the whole call, so events for the same user are processed
// strictly one at a time while different users proceed concurrently.
func (r *Router) Dispatch(ctx context.Context, ev Event) (*Reply, error) {
	var reply *Reply

	err := r.sessions.WithSession(ev.User.ID, func(s *session.Session) error {
		var err error
		switch ev.Kind {
		case EventCommand:
			reply, err = r.handleCommand(ctx, ev, s)
		case EventText:
			reply, err = r.handleText(ctx, ev, s)
		case EventCallback:
			reply, err = r.handleCallback(ctx, ev, s)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("dispatching event for user %d: %w", ev.User.ID, err)
	}

	return reply, nil
}

func (r *Router) handleCommand(ctx context.Context, ev Event, s *session.Session) (*Reply, error) {
	switch ev.Command {
	case "start":
		if err := r.store.UpsertUser(ctx, ev.User); err != nil {
			return nil, err
		}
		return &Reply{Text: greeting(ev.User.FirstName), Buttons: mainMenu()}, nil

	case "help":
		return textReply(helpText), nil

	case "addtask":
		return r.startCreation(s), nil

	case "mytasks":
		tasks, err := r.store.ListActive(ctx, ev.User.ID)
		if err != nil {
			return nil, err
		}
		return renderActiveList(tasks), nil

	case "completed":
		tasks, err := r.store.ListCompleted(ctx, ev.User.ID)
		if err != nil {
			return nil, err
		}
		return renderCompletedList(tasks), nil

	case "cancel":
		if s.Step == session.StepIdle {
			return nil, nil
		}
		s.Reset()
		return textReply(cancelledMessage), nil
	}

	r.log.Debug("ignoring unknown command", "command", ev.Command, "user_id", ev.User.ID)
	return nil, nil
}

// startCreation enters the creation dialog, discarding any previous
// draft, and prompts for a category.
func (r *Router) startCreation(s *session.Session) *Reply {
	s.Reset()
	s.Step = session.StepAwaitingCategory
	return &Reply{Text: categoryPrompt, Buttons: categoryMenu()}
}

func (r *Router) handleText(ctx context.Context, ev Event, s *session.Session) (*Reply, error) {
	switch s.Step {
	case session.StepAwaitingCategory:
		// Categories are chosen by button; free text re-prompts.
		return &Reply{Text: categoryPrompt, Buttons: categoryMenu()}, nil

	case session.StepAwaitingName:
		name := strings.TrimSpace(ev.Text)
		if name == "" {
			return textReply(namePrompt), nil
		}
		s.Draft.Name = name
		s.Step = session.StepAwaitingDeadline
		return textReply(deadlinePrompt), nil

	case session.StepAwaitingDeadline:
		return r.finishCreation(ctx, ev, s)
	}

	// Free text outside the dialog is ignored.
	return nil, nil
}

// finishCreation parses the deadline and commits the draft. An
// unparseable deadline keeps the dialog (and the draft) alive and
// re-prompts with the error.
func (r *Router) finishCreation(ctx context.Context, ev Event, s *session.Session) (*Reply, error) {
	due, err := deadline.Parse(ev.Text, r.now())
	if err != nil {
		var unparseable *deadline.UnparseableError
		if errors.As(err, &unparseable) {
			return textReply(fmt.Sprintf(
				"❌ Не могу распознать дедлайн «%s»\nПопробуйте снова:",
				unparseable.Input,
			)), nil
		}
		return nil, err
	}

	task, err := r.store.CreateTask(ctx, ev.User.ID, s.Draft.Category, s.Draft.Name, due)
	if err != nil {
		return nil, err
	}

	s.Reset()
	r.log.Info("task created",
		"user_id", ev.User.ID, "task_id", task.ID, "category", task.Category)
	return renderCreated(task), nil
}

func (r *Router) handleCallback(ctx context.Context, ev Event, s *session.Session) (*Reply, error) {
	switch ev.Callback {
	case "add_task":
		return r.startCreation(s), nil

	case "show_tasks":
		tasks, err := r.store.ListActive(ctx, ev.User.ID)
		if err != nil {
			return nil, err
		}
		return renderActiveList(tasks), nil

	case "show_completed":
		tasks, err := r.store.ListCompleted(ctx, ev.User.ID)
		if err != nil {
			return nil, err
		}
		return renderCompletedList(tasks), nil
	}

	if key, ok := strings.CutPrefix(ev.Callback, "category_"); ok {
		return r.handleCategory(key, s), nil
	}

	return r.handleAction(ctx, ev)
}

// handleCategory advances the dialog past category selection. A
// category press outside the dialog, or an unknown key, re-prompts or
// is dropped rather than corrupting the session.
func (r *Router) handleCategory(key string, s *session.Session) *Reply {
	if s.Step != session.StepAwaitingCategory {
		return nil
	}

	category, ok := model.ParseCategory(key)
	if !ok {
		return &Reply{Text: categoryPrompt, Buttons: categoryMenu()}
	}

	s.Draft.Category = category
	s.Step = session.StepAwaitingName
	return renderCategoryChosen(category)
}

// handleAction executes a decoded task-action button. A false store
// result (missing task or foreign owner) produces no reply at all, so
// nothing leaks about other users' tasks.
func (r *Router) handleAction(ctx context.Context, ev Event) (*Reply, error) {
	action, err := ParseAction(ev.Callback)
	if err != nil {
		r.log.Debug("ignoring invalid callback", "payload", ev.Callback, "user_id", ev.User.ID)
		return nil, nil
	}

	var (
		ok   bool
		text string
	)

	switch action.Kind {
	case ActionDone:
		ok, err = r.store.CompleteTask(ctx, action.TaskID, ev.User.ID)
		text = "✅ Задача выполнена!"
	case ActionDelete:
		ok, err = r.store.DeleteTask(ctx, action.TaskID, ev.User.ID)
		text = "🗑️ Задача удалена!"
	case ActionRestore:
		ok, err = r.store.RestoreTask(ctx, action.TaskID, ev.User.ID)
		text = "↩️ Задача восстановлена!"
	}

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return textReply(text), nil
}
