package model

import "time"

// Category classifies a task. The set is fixed; a task never changes
// category after creation.
type Category string

const (
	CategoryAnalytics   Category = "analytics"
	CategoryDevelopment Category = "development"
	CategoryDesign      Category = "design"
	CategoryMarketing   Category = "marketing"
	CategoryMeeting     Category = "meeting"
	CategoryOther       Category = "other"
)

// Categories lists all valid categories in menu display order.
var Categories = []Category{
	CategoryAnalytics,
	CategoryDevelopment,
	CategoryDesign,
	CategoryMarketing,
	CategoryMeeting,
	CategoryOther,
}

// categoryLabels maps each category to its user-facing label.
var categoryLabels = map[Category]string{
	CategoryAnalytics:   "📊 Аналитика",
	CategoryDevelopment: "💻 Разработка",
	CategoryDesign:      "🎨 Дизайн",
	CategoryMarketing:   "📈 Маркетинг",
	CategoryMeeting:     "🤝 Встречи",
	CategoryOther:       "📌 Прочее",
}

// Label returns the display label for the category. Unknown values
// fall back to the raw string.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory returns the category matching the given key and
// whether it is part of the fixed set.
func ParseCategory(key string) (Category, bool) {
	c := Category(key)
	return c, c.Valid()
}

// Task is a single tracked item owned by one user.
type Task struct {
	// ID is the storage-wide unique identifier, assigned on insert.
	ID int64 `db:"id"`

	// OwnerID is the user the task belongs to. Every store operation
	// is scoped by it.
	OwnerID int64 `db:"owner_id"`

	// LocalID is the dense per-owner number shown to the user. After a
	// deletion the owner's remaining tasks are renumbered so the set of
	// local ids is always 1..N with no gaps.
	LocalID int `db:"local_id"`

	Category Category `db:"category"`
	Name     string   `db:"name"`

	// Deadline is nil when the task has no deadline.
	Deadline *time.Time `db:"deadline"`

	Completed   bool       `db:"completed"`
	CompletedAt *time.Time `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// User is a bot user, recorded on first contact.
type User struct {
	ID        int64     `db:"user_id"`
	Username  string    `db:"username"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
}
