package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lexis/internal/vocab"
)

// MinFields is the smallest number of fields a valid row can have:
// headword, forms, translation, lesson.
const MinFields = 4

// HeaderToken marks the header row of a word list. It is matched
// case-insensitively against the first non-blank line only.
const HeaderToken = "latein"

// TranslationSeparator rejoins translation tokens that were split on
// unquoted delimiters.
const TranslationSeparator = "; "

// ErrNoValidRows is returned when a word list contains no importable rows.
var ErrNoValidRows = errors.New("no valid vocabulary rows found")

// WarningReason classifies why a row was skipped.
type WarningReason string

const (
	ReasonTooFewFields  WarningReason = "too-few-fields"
	ReasonInvalidLesson WarningReason = "invalid-lesson"
)

// Warning describes a skipped row.
type Warning struct {
	// Line is the 1-based position among the non-blank lines of the input.
	Line   int
	Reason WarningReason
	Fields int
	// Raw is the offending lesson value for ReasonInvalidLesson.
	Raw string
}

func (w Warning) String() string {
	switch w.Reason {
	case ReasonTooFewFields:
		return fmt.Sprintf("line %d: expected at least %d fields, got %d", w.Line, MinFields, w.Fields)
	case ReasonInvalidLesson:
		return fmt.Sprintf("line %d: invalid lesson number %q", w.Line, w.Raw)
	default:
		return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
	}
}

// Result is the outcome of parsing a word list.
type Result struct {
	Items         []vocab.Item
	Warnings      []Warning
	HeaderSkipped bool
	// Lines is the number of non-blank lines seen, header included.
	Lines int
}

// Err returns ErrNoValidRows when nothing could be imported.
func (r *Result) Err() error {
	if len(r.Items) == 0 {
		return ErrNoValidRows
	}
	return nil
}

// Option configures Parse.
type Option func(*parser)

// WithClock sets the time source for item creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *parser) { p.now = now }
}

// WithIDFunc sets the generator for item ids.
func WithIDFunc(newID func() string) Option {
	return func(p *parser) { p.newID = newID }
}

type parser struct {
	now   func() time.Time
	newID func() string
}

// Parse converts the text of a word list into vocabulary items.
//
// Each row is headword, forms, translation..., lesson. The lesson is always
// the last field so that unquoted delimiters inside the translation only
// produce extra translation tokens. Malformed rows are skipped and reported
// as warnings; Parse itself never fails.
func Parse(text string, opts ...Option) *Result {
	p := &parser{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(p)
	}

	lines := nonBlankLines(text)
	res := &Result{Lines: len(lines)}

	start := 0
	if len(lines) > 0 && strings.Contains(strings.ToLower(lines[0]), HeaderToken) {
		res.HeaderSkipped = true
		start = 1
	}

	for i := start; i < len(lines); i++ {
		lineNo := i + 1
		fields := ParseRecord(lines[i])
		if len(fields) < MinFields {
			res.Warnings = append(res.Warnings, Warning{
				Line:   lineNo,
				Reason: ReasonTooFewFields,
				Fields: len(fields),
			})
			continue
		}

		rawLesson := fields[len(fields)-1]
		lesson, err := strconv.Atoi(strings.TrimSpace(rawLesson))
		if err != nil {
			res.Warnings = append(res.Warnings, Warning{
				Line:   lineNo,
				Reason: ReasonInvalidLesson,
				Fields: len(fields),
				Raw:    rawLesson,
			})
			continue
		}

		res.Items = append(res.Items, p.newItem(fields, lesson))
	}

	return res
}

func (p *parser) newItem(fields []string, lesson int) vocab.Item {
	var forms *string
	if f := fields[1]; f != "" {
		forms = &f
	}
	return vocab.Item{
		ID:          p.newID(),
		Headword:    fields[0],
		Forms:       forms,
		Translation: strings.Join(fields[2:len(fields)-1], TranslationSeparator),
		Lesson:      lesson,
		CreatedAt:   p.now(),
	}
}

// nonBlankLines splits text into lines and drops those that are empty after
// trimming. Carriage returns from CRLF files are removed.
func nonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
