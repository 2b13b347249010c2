package hints

// Hint is an LLM-generated memory aid for one vocabulary item.
type Hint struct {
	Headword string
	Mnemonic string
	Note     string
}

// Input is the card a hint is requested for.
type Input struct {
	Headword    string
	Forms       string
	Translation string
	Lesson      int
}

// Result is a finished request. Exactly one of Hint and Err is set.
type Result struct {
	Hint *Hint
	Err  error
}
