package entities

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestSanitize(t *testing.T) {
	is := is.New(t)

	out := Sanitize(`<script>alert("xss")</script>`)
	is.True(!strings.ContainsAny(out, `<>"'/`)) // no unsafe characters survive
	is.True(!strings.Contains(out, "<script>"))

	is.Equal(Sanitize("  hola mundo  "), "hola mundo")
	is.Equal(Sanitize("a/b"), "a&#x2F;b")
	is.Equal(Sanitize("it's"), "it&#x27;s")
	is.Equal(Sanitize(""), "")
}

func TestValidDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-12-01", true},
		{"2024-01-31", true},
		{"2024-13-01", false}, // month out of range
		{"2024-12-32", false}, // day out of range
		{"2024-2-01", false},  // wrong shape
		{"01-12-2024", false},
		{"", false},
		{"2024-12-01T10:00", false},
	}

	for _, c := range cases {
		if got := ValidDate(c.in); got != c.ok {
			t.Errorf("ValidDate(%q) = %v, want %v", c.in, got, c.ok)
		}
	}
}

func TestValidTime(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"00:00", true},
		{"23:59", true},
		{"9:30", true}, // single-digit hour accepted
		{"24:00", false},
		{"12:60", false},
		{"12", false},
		{"", false},
	}

	for _, c := range cases {
		if got := ValidTime(c.in); got != c.ok {
			t.Errorf("ValidTime(%q) = %v, want %v", c.in, got, c.ok)
		}
	}
}

func TestNewIDStrictlyIncreasing(t *testing.T) {
	is := is.New(t)

	prev := NewID()
	for i := 0; i < 1000; i++ {
		id := NewID()
		is.True(id > prev)
		prev = id
	}
}

func TestDocumentLookups(t *testing.T) {
	is := is.New(t)

	catID := int64(100)
	doc := &Document{
		Tasks: []Task{
			{ID: 1, Title: "a"},
			{ID: 2, Title: "b", CategoryID: &catID},
		},
		Categories: []Category{
			{ID: 100, Name: "Trabajo"},
			{ID: 200, Name: "Personal"},
		},
	}

	is.Equal(doc.FindTask(2), 1)
	is.Equal(doc.FindTask(99), -1)
	is.Equal(doc.FindCategory(200), 1)
	is.Equal(doc.FindCategory(42), -1)

	is.True(doc.CategoryInUse(100))
	is.True(!doc.CategoryInUse(200))
}

func TestDefaultCategoriesSeed(t *testing.T) {
	is := is.New(t)

	seed := DefaultCategories()
	is.Equal(len(seed), 3)
	for _, c := range seed {
		is.True(c.ID != 0)
		is.True(c.Name != "")
		is.True(strings.HasPrefix(c.Color, "#"))
	}
}
