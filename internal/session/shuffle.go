package session

import (
	"math/rand/v2"

	"github.com/abhisek/lexis/internal/vocab"
)

// Shuffler reorders a deck in place.
type Shuffler interface {
	Shuffle(deck []vocab.Item)
}

// ShufflerFunc adapts a function to the Shuffler interface.
type ShufflerFunc func(deck []vocab.Item)

func (f ShufflerFunc) Shuffle(deck []vocab.Item) { f(deck) }

// RandShuffler performs a uniform Fisher-Yates shuffle. A nil Rand uses the
// global source.
type RandShuffler struct {
	Rand *rand.Rand
}

func (s RandShuffler) Shuffle(deck []vocab.Item) {
	swap := func(i, j int) { deck[i], deck[j] = deck[j], deck[i] }
	if s.Rand != nil {
		s.Rand.Shuffle(len(deck), swap)
		return
	}
	rand.Shuffle(len(deck), swap)
}

// NoShuffle keeps the deck in collection order.
var NoShuffle Shuffler = ShufflerFunc(func([]vocab.Item) {})
