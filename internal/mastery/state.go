package mastery

// MasteryState represents an item's classification from its answer history.
type MasteryState string

const (
	StateNew     MasteryState = "new"
	StateKnown   MasteryState = "known"
	StateUnknown MasteryState = "unknown"
)

// LessonState summarizes how far a lesson has come along.
type LessonState int

const (
	LessonUntouched LessonState = iota
	LessonLearning
	LessonMastered
)

func (s LessonState) String() string {
	switch s {
	case LessonUntouched:
		return "untouched"
	case LessonLearning:
		return "learning"
	case LessonMastered:
		return "mastered"
	default:
		return "unknown"
	}
}
