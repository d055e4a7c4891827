package bot

import (
	"fmt"
	"strings"

	"github.com/avdeeva/task-tracker-bot/internal/model"
)

// timeLayout is the display format for deadlines and completion times.
const timeLayout = "02.01.2006 15:04"

const helpText = "📋 Доступные команды:\n" +
	"/start – начать\n" +
	"/addtask – добавить задачу\n" +
	"/mytasks – активные задачи\n" +
	"/completed – выполненные\n" +
	"/cancel – отменить добавление"

const (
	deadlinePrompt   = "📅 Введите дедлайн (например: '25.12.2024 18:00' или 'Завтра'), либо пустую строку, если дедлайн не нужен:"
	namePrompt       = "Введите название задачи:"
	categoryPrompt   = "Выберите категорию:"
	cancelledMessage = "❌ Добавление задачи отменено"
	emptyListMessage = "📭 Нет задач"
)

// greeting renders the /start welcome with the command overview.
func greeting(firstName string) string {
	return fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Я бот-задачник. Вот что я умею:\n"+
			"📝 /addtask – добавить задачу\n"+
			"📋 /mytasks – показать активные задачи\n"+
			"✅ /completed – показать выполненные\n"+
			"🆘 /help – помощь",
		firstName,
	)
}

// mainMenu builds the buttons attached to the /start greeting.
func mainMenu() [][]Button {
	return [][]Button{
		{{Label: "📝 Добавить задачу", Data: "add_task"}},
		{{Label: "📋 Мои задачи", Data: "show_tasks"}},
		{{Label: "✅ Выполненные", Data: "show_completed"}},
	}
}

// categoryMenu builds one button per category, payload "category_<key>".
func categoryMenu() [][]Button {
	rows := make([][]Button, 0, len(model.Categories))
	for _, c := range model.Categories {
		rows = append(rows, []Button{{
			Label: c.Label(),
			Data:  "category_" + string(c),
		}})
	}
	return rows
}

// formatDeadline renders a task deadline, with a dash for "none".
func formatDeadline(t *model.Task) string {
	if t.Deadline == nil {
		return "–"
	}
	return t.Deadline.Format(timeLayout)
}

// renderActiveList renders the owner's active tasks with per-task
// done/delete buttons.
func renderActiveList(tasks []model.Task) *Reply {
	if len(tasks) == 0 {
		return textReply(emptyListMessage)
	}

	var b strings.Builder
	b.WriteString("📋 Активные задачи:\n\n")

	buttons := make([][]Button, 0, len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(&b, "#%d %s – %s\nДедлайн: %s\n\n",
			t.LocalID, t.Category.Label(), t.Name, formatDeadline(&t))

		buttons = append(buttons, []Button{
			{Label: fmt.Sprintf("✅ #%d", t.LocalID), Data: fmt.Sprintf("done_%d", t.ID)},
			{Label: fmt.Sprintf("🗑 #%d", t.LocalID), Data: fmt.Sprintf("delete_%d", t.ID)},
		})
	}

	return &Reply{Text: strings.TrimRight(b.String(), "\n"), Buttons: buttons}
}

// renderCompletedList renders the owner's completed tasks with
// per-task restore/delete buttons.
func renderCompletedList(tasks []model.Task) *Reply {
	if len(tasks) == 0 {
		return textReply(emptyListMessage)
	}

	var b strings.Builder
	b.WriteString("✅ Выполненные:\n\n")

	buttons := make([][]Button, 0, len(tasks))
	for _, t := range tasks {
		done := "?"
		if t.CompletedAt != nil {
			done = t.CompletedAt.Format(timeLayout)
		}
		fmt.Fprintf(&b, "#%d %s – %s\n✅ Выполнено: %s\n\n",
			t.LocalID, t.Category.Label(), t.Name, done)

		buttons = append(buttons, []Button{
			{Label: fmt.Sprintf("↩️ #%d", t.LocalID), Data: fmt.Sprintf("restore_%d", t.ID)},
			{Label: fmt.Sprintf("🗑 #%d", t.LocalID), Data: fmt.Sprintf("delete_%d", t.ID)},
		})
	}

	return &Reply{Text: strings.TrimRight(b.String(), "\n"), Buttons: buttons}
}

// renderCreated renders the confirmation shown after a task is saved.
func renderCreated(t model.Task) *Reply {
	deadline := "без дедлайна"
	if t.Deadline != nil {
		deadline = t.Deadline.Format(timeLayout)
	}

	return textReply(fmt.Sprintf(
		"✅ Задача добавлена!\n\n📁 %s\n📝 %s\n📅 %s\nНомер: #%d",
		t.Category.Label(), t.Name, deadline, t.LocalID,
	))
}

// renderCategoryChosen confirms the category and asks for the name.
func renderCategoryChosen(c model.Category) *Reply {
	return textReply(fmt.Sprintf("Категория: %s\n%s", c.Label(), namePrompt))
}
