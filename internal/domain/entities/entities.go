package entities

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Common errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryInUse      = errors.New("category is referenced by existing tasks")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidDate        = errors.New("date must be a valid YYYY-MM-DD date")
	ErrInvalidTime        = errors.New("time must be HH:MM in 24-hour format")
	ErrMissingFields      = errors.New("required fields are missing")
)

// DefaultColor is assigned to categories created without an explicit color.
const DefaultColor = "#555555"

// Task represents a schedulable item. JSON field names match the existing
// clients and data files, so they stay in Spanish on the wire and on disk.
type Task struct {
	ID         int64  `json:"id"`
	Title      string `json:"titulo"`
	Date       string `json:"fecha"`
	Time       string `json:"hora"`
	CategoryID *int64 `json:"categoriaId"`
	Completed  bool   `json:"completada"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Category is a named, colored grouping that tasks may reference.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"nombre"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Document is the whole persisted state. Both sequences are always
// present, in storage order, with no secondary index; every lookup is a
// linear scan.
type Document struct {
	Tasks      []Task     `json:"tareas"`
	Categories []Category `json:"categorias"`
}

// NewDocument returns an empty document with both sequences allocated.
func NewDocument() *Document {
	return &Document{
		Tasks:      []Task{},
		Categories: []Category{},
	}
}

// DefaultCategories is the seed applied on first run and during
// legacy-array migration.
func DefaultCategories() []Category {
	now := Now()
	return []Category{
		{ID: NewID(), Name: "Trabajo", Color: "#e74c3c", CreatedAt: now},
		{ID: NewID(), Name: "Personal", Color: "#3498db", CreatedAt: now},
		{ID: NewID(), Name: "Estudio", Color: "#2ecc71", CreatedAt: now},
	}
}

// FindTask returns the index of the task with the given id, or -1.
func (d *Document) FindTask(id int64) int {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// FindCategory returns the index of the category with the given id, or -1.
func (d *Document) FindCategory(id int64) int {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

// CategoryInUse reports whether any task references the category.
func (d *Document) CategoryInUse(id int64) bool {
	for i := range d.Tasks {
		if d.Tasks[i].CategoryID != nil && *d.Tasks[i].CategoryID == id {
			return true
		}
	}
	return false
}

var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// Sanitize escapes the characters < > " ' / to their HTML entities and
// trims surrounding whitespace. None of those characters survive
// literally in stored text that originated from user input.
func Sanitize(s string) string {
	return htmlEscaper.Replace(strings.TrimSpace(s))
}

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
// The shape check alone would accept months like 13, so the value must
// also parse.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidTime reports whether s is HH:MM in 24-hour format.
func ValidTime(s string) bool {
	return timeRe.MatchString(s)
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a millisecond-timestamp identifier. Successive calls are
// strictly increasing even within the same millisecond, so ids issued by
// one process never collide.
func NewID() int64 {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// Now returns the current UTC time in ISO-8601 form, the format used for
// createdAt/updatedAt stamps.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
