package mastery

// ResolveDisplayState maps a lesson's counts into the display state used by
// the stats screen. A lesson is mastered only when every item's latest
// answer is known.
func ResolveDisplayState(ls LessonStats) LessonState {
	switch {
	case ls.Practiced == 0:
		return LessonUntouched
	case ls.Total > 0 && ls.Known == ls.Total:
		return LessonMastered
	default:
		return LessonLearning
	}
}
