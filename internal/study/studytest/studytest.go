// Package studytest builds controllers over throwaway in-memory stores for
// tests of packages that sit on top of study.
package studytest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/store"
	"github.com/abhisek/lexis/internal/study"
)

// Words is a small word list over three lessons with one header row.
const Words = `Latein;Formen;Deutsch;Lektion
amare;"amo, amavi";lieben;1
puella;puellae;Mädchen;1
rex;regis;König;2
lex;legis;Gesetz;2
urbs;urbis;Stadt;3
`

// Now is the fixed clock used by NewController.
var Now = time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)

// OpenStore opens a private in-memory store closed at test cleanup.
func OpenStore(t testing.TB) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	st, err := store.Open(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// NewController returns a controller with deck order preserved and a fixed
// clock. When words is not empty it is imported first.
func NewController(t testing.TB, words string) *study.Controller {
	t.Helper()
	st := OpenStore(t)

	n := 0
	ctrl, err := study.New(context.Background(), st.KV(),
		study.WithShuffler(session.NoShuffle),
		study.WithClock(func() time.Time { return Now }),
		study.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if words != "" {
		if _, err := ctrl.Import(context.Background(), words); err != nil {
			t.Fatalf("import: %v", err)
		}
	}
	return ctrl
}
