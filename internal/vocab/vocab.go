package vocab

import (
	"slices"
	"time"
)

// Item is a single vocabulary entry imported from a word list.
type Item struct {
	ID          string    `json:"id"`
	Headword    string    `json:"headword"`
	Forms       *string   `json:"forms"`
	Translation string    `json:"translation"`
	Lesson      int       `json:"lesson"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FormsText returns the principal forms, or "" when the item has none.
func (it Item) FormsText() string {
	if it.Forms == nil {
		return ""
	}
	return *it.Forms
}

// AnswerEvent records one known/unknown answer for an item.
// ItemID is a lookup-only reference; the item may no longer exist after a
// re-import.
type AnswerEvent struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	Known     bool      `json:"known"`
	Timestamp time.Time `json:"timestamp"`
}

// Lessons returns the distinct lesson numbers present in items, ascending.
func Lessons(items []Item) []int {
	seen := make(map[int]bool)
	var out []int
	for _, it := range items {
		if !seen[it.Lesson] {
			seen[it.Lesson] = true
			out = append(out, it.Lesson)
		}
	}
	slices.Sort(out)
	return out
}

// CountByLesson returns the number of items per lesson.
func CountByLesson(items []Item) map[int]int {
	counts := make(map[int]int)
	for _, it := range items {
		counts[it.Lesson]++
	}
	return counts
}

// Selection is a set of selected lesson numbers.
type Selection map[int]bool

// NewSelection builds a selection from the given lessons.
func NewSelection(lessons ...int) Selection {
	s := make(Selection, len(lessons))
	for _, l := range lessons {
		s[l] = true
	}
	return s
}

// Toggle adds the lesson when absent and removes it when present.
// It reports whether the lesson is selected afterwards.
func (s Selection) Toggle(lesson int) bool {
	if s[lesson] {
		delete(s, lesson)
		return false
	}
	s[lesson] = true
	return true
}

// Has reports whether the lesson is selected.
func (s Selection) Has(lesson int) bool {
	return s[lesson]
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return len(s) == 0
}

// Sorted returns the selected lessons in ascending order.
func (s Selection) Sorted() []int {
	out := make([]int, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	c := make(Selection, len(s))
	for l := range s {
		c[l] = true
	}
	return c
}
