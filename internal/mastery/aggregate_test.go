package mastery

import (
	"strconv"
	"testing"
	"time"

	"github.com/abhisek/lexis/internal/vocab"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func item(id string, lesson int) vocab.Item {
	return vocab.Item{ID: id, Headword: id, Translation: id, Lesson: lesson, CreatedAt: t0}
}

func ev(n int, itemID string, known bool) vocab.AnswerEvent {
	return vocab.AnswerEvent{
		ID:        itemID + "-" + strconv.Itoa(n),
		ItemID:    itemID,
		Known:     known,
		Timestamp: t0.Add(time.Duration(n) * time.Second),
	}
}

func TestAggregate_LastEventWins(t *testing.T) {
	items := []vocab.Item{item("a", 1)}
	events := []vocab.AnswerEvent{
		ev(1, "a", false),
		ev(2, "a", false),
		ev(3, "a", true),
	}

	rep := Aggregate(items, events)
	ls, ok := rep.Lesson(1)
	if !ok {
		t.Fatal("expected lesson 1 in report")
	}
	if ls.Known != 1 || ls.Unknown != 0 {
		t.Errorf("Known/Unknown = %d/%d, want 1/0", ls.Known, ls.Unknown)
	}
	if ls.Practiced != 1 {
		t.Errorf("Practiced = %d, want 1", ls.Practiced)
	}
	if ls.PercentKnown != 100 {
		t.Errorf("PercentKnown = %d, want 100", ls.PercentKnown)
	}

	// Global totals count every event, not the latest per item.
	if rep.Global.TotalAnswers != 3 || rep.Global.KnownAnswers != 1 {
		t.Errorf("Global answers = %d known of %d, want 1 of 3", rep.Global.KnownAnswers, rep.Global.TotalAnswers)
	}
	if rep.Global.Percent != 33 {
		t.Errorf("Global.Percent = %d, want 33", rep.Global.Percent)
	}
}

func TestAggregate_LatestUnknownOverridesEarlierKnown(t *testing.T) {
	items := []vocab.Item{item("a", 1)}
	events := []vocab.AnswerEvent{ev(1, "a", true), ev(2, "a", false)}

	ls, _ := Aggregate(items, events).Lesson(1)
	if ls.Known != 0 || ls.Unknown != 1 {
		t.Errorf("Known/Unknown = %d/%d, want 0/1", ls.Known, ls.Unknown)
	}
}

func TestAggregate_Empty(t *testing.T) {
	rep := Aggregate(nil, nil)
	if rep.Global.Percent != 0 {
		t.Errorf("Global.Percent = %d, want 0", rep.Global.Percent)
	}
	if len(rep.Lessons) != 0 {
		t.Errorf("Lessons = %v, want none", rep.Lessons)
	}
}

func TestAggregate_UnpracticedLessonHasZeroPercentages(t *testing.T) {
	items := []vocab.Item{item("a", 2), item("b", 2)}
	rep := Aggregate(items, nil)
	ls, ok := rep.Lesson(2)
	if !ok {
		t.Fatal("expected lesson 2")
	}
	if ls.Total != 2 || ls.Practiced != 0 {
		t.Errorf("Total/Practiced = %d/%d, want 2/0", ls.Total, ls.Practiced)
	}
	if ls.PercentKnown != 0 || ls.Progress != 0 {
		t.Errorf("percentages = %d/%d, want 0/0", ls.PercentKnown, ls.Progress)
	}
}

func TestAggregate_LessonsAscendingWithProgress(t *testing.T) {
	items := []vocab.Item{
		item("a", 3), item("b", 1), item("c", 1), item("d", 1),
	}
	events := []vocab.AnswerEvent{
		ev(1, "b", true),
		ev(2, "c", false),
		ev(3, "a", true),
	}

	rep := Aggregate(items, events)
	if len(rep.Lessons) != 2 {
		t.Fatalf("len(Lessons) = %d, want 2", len(rep.Lessons))
	}
	if rep.Lessons[0].Lesson != 1 || rep.Lessons[1].Lesson != 3 {
		t.Errorf("lesson order = %d,%d, want 1,3", rep.Lessons[0].Lesson, rep.Lessons[1].Lesson)
	}

	l1 := rep.Lessons[0]
	if l1.Total != 3 || l1.Practiced != 2 || l1.Known != 1 || l1.Unknown != 1 {
		t.Errorf("lesson 1 = %+v", l1)
	}
	if l1.PercentKnown != 50 {
		t.Errorf("lesson 1 PercentKnown = %d, want 50", l1.PercentKnown)
	}
	if l1.Progress != 33 {
		t.Errorf("lesson 1 Progress = %d, want 33", l1.Progress)
	}

	l3 := rep.Lessons[1]
	if l3.Progress != 100 || l3.PercentKnown != 100 {
		t.Errorf("lesson 3 percentages = %d/%d, want 100/100", l3.PercentKnown, l3.Progress)
	}
}

func TestAggregate_OrphanedEventsIgnoredPerLesson(t *testing.T) {
	items := []vocab.Item{item("a", 1)}
	events := []vocab.AnswerEvent{
		ev(1, "gone", true),
		ev(2, "gone", true),
		ev(3, "a", false),
	}

	rep := Aggregate(items, events)
	ls, _ := rep.Lesson(1)
	if ls.Practiced != 1 || ls.Known != 0 {
		t.Errorf("lesson 1 = %+v, want practiced 1 known 0", ls)
	}
	if rep.Global.TotalAnswers != 3 || rep.Global.KnownAnswers != 2 {
		t.Errorf("global = %+v, want 2 known of 3", rep.Global)
	}
	if rep.Global.Percent != 67 {
		t.Errorf("Global.Percent = %d, want 67", rep.Global.Percent)
	}
}

func TestPercent_Bounds(t *testing.T) {
	tests := []struct {
		part, whole, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 7, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{7, 7, 100},
	}
	for _, tt := range tests {
		got := percent(tt.part, tt.whole)
		if got != tt.want {
			t.Errorf("percent(%d, %d) = %d, want %d", tt.part, tt.whole, got, tt.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("percent(%d, %d) = %d out of range", tt.part, tt.whole, got)
		}
	}
}

func TestResolveDisplayState(t *testing.T) {
	tests := []struct {
		name string
		ls   LessonStats
		want LessonState
	}{
		{"untouched", LessonStats{Total: 4}, LessonUntouched},
		{"learning", LessonStats{Total: 4, Practiced: 2, Known: 2}, LessonLearning},
		{"all known", LessonStats{Total: 2, Practiced: 2, Known: 2}, LessonMastered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDisplayState(tt.ls); got != tt.want {
				t.Errorf("ResolveDisplayState = %s, want %s", got, tt.want)
			}
		})
	}
}
