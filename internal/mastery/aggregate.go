package mastery

import (
	"math"

	"github.com/abhisek/lexis/internal/vocab"
)

// Global holds collection-wide counts.
type Global struct {
	TotalItems   int
	TotalAnswers int
	KnownAnswers int
	// Percent is known answers over all answers, counting every event.
	Percent int
}

// LessonStats holds the counts for one lesson group.
type LessonStats struct {
	Lesson    int
	Total     int
	Practiced int
	Known     int
	Unknown   int
	// PercentKnown is known over practiced items.
	PercentKnown int
	// Progress is known over all items in the lesson.
	Progress int
}

// Report is the result of Aggregate.
type Report struct {
	Global  Global
	Lessons []LessonStats
}

// Lesson returns the stats row for lesson n.
func (r Report) Lesson(n int) (LessonStats, bool) {
	for _, ls := range r.Lessons {
		if ls.Lesson == n {
			return ls, true
		}
	}
	return LessonStats{}, false
}

// Aggregate folds the answer history into global and per-lesson counts.
//
// Per-lesson classification uses the latest event for each item, so an item
// answered unknown twice and then known counts as known. Events whose item is
// no longer in the collection still count toward the global totals but are
// ignored per lesson.
func Aggregate(items []vocab.Item, events []vocab.AnswerEvent) Report {
	rep := Report{
		Global: Global{
			TotalItems:   len(items),
			TotalAnswers: len(events),
		},
	}
	for _, e := range events {
		if e.Known {
			rep.Global.KnownAnswers++
		}
	}
	rep.Global.Percent = percent(rep.Global.KnownAnswers, rep.Global.TotalAnswers)

	latest := LatestByItem(events)

	byLesson := make(map[int]*LessonStats)
	for _, it := range items {
		ls, ok := byLesson[it.Lesson]
		if !ok {
			ls = &LessonStats{Lesson: it.Lesson}
			byLesson[it.Lesson] = ls
		}
		ls.Total++
		switch Classify(latest, it.ID) {
		case StateKnown:
			ls.Practiced++
			ls.Known++
		case StateUnknown:
			ls.Practiced++
			ls.Unknown++
		}
	}

	for _, n := range vocab.Lessons(items) {
		ls := byLesson[n]
		ls.PercentKnown = percent(ls.Known, ls.Practiced)
		ls.Progress = percent(ls.Known, ls.Total)
		rep.Lessons = append(rep.Lessons, *ls)
	}
	return rep
}

// LatestByItem maps each item id to its most recent event. Events are in
// insertion order, so a later event always replaces an earlier one.
func LatestByItem(events []vocab.AnswerEvent) map[string]vocab.AnswerEvent {
	latest := make(map[string]vocab.AnswerEvent, len(events))
	for _, e := range events {
		latest[e.ItemID] = e
	}
	return latest
}

// Classify returns the mastery state of an item given the latest events.
func Classify(latest map[string]vocab.AnswerEvent, itemID string) MasteryState {
	e, ok := latest[itemID]
	if !ok {
		return StateNew
	}
	if e.Known {
		return StateKnown
	}
	return StateUnknown
}

// percent returns round(part/whole*100), or 0 when whole is 0.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	p := int(math.Round(float64(part) / float64(whole) * 100))
	return max(0, min(100, p))
}
