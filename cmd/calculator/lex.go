package main

import (
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/zephyrtronium/calculator"
)

// aliases are spellings accepted in addition to unit displays and names.
var aliases = map[string]calculator.Unit{
	"[":   calculator.LeftBracket,
	"]":   calculator.RightBracket,
	"{":   calculator.LeftBracket,
	"}":   calculator.RightBracket,
	"·":   calculator.Times,
	"**":  calculator.Power,
	"ans": calculator.Ans,
}

// spellings maps every accepted spelling to its unit. longest is the length
// in runes of the longest spelling.
var spellings, longest = func() (map[string]calculator.Unit, int) {
	m := make(map[string]calculator.Unit)
	n := 0
	add := func(s string, u calculator.Unit) {
		s = norm.NFC.String(s)
		if _, ok := m[s]; ok {
			return
		}
		m[s] = u
		n = max(n, utf8.RuneCountInString(s))
	}
	// Displays take precedence over names, which take precedence over
	// aliases.
	for _, u := range calculator.Vocabulary() {
		add(u.String(), u)
	}
	for _, u := range calculator.Vocabulary() {
		add(u.Name(), u)
	}
	for s, u := range aliases {
		add(s, u)
	}
	return m, n
}()

type lexer struct {
	src []rune
	// col is the index in src of the next rune to scan.
	col int
}

func lex(src string) *lexer {
	return &lexer{src: []rune(norm.NFC.String(width.Fold.String(src)))}
}

// next scans the next unit from the input. At the end of the input, the
// error is io.EOF. Units are matched greedily, so "sinh" scans as one unit
// rather than sin followed by h.
func (l *lexer) next() (calculator.Unit, error) {
	for l.col < len(l.src) && unicode.IsSpace(l.src[l.col]) {
		l.col++
	}
	if l.col >= len(l.src) {
		return 0, io.EOF
	}
	for n := min(longest, len(l.src)-l.col); n > 0; n-- {
		if u, ok := spellings[string(l.src[l.col:l.col+n])]; ok {
			l.col += n
			return u, nil
		}
	}
	err := &LexError{Text: string(l.src[l.col]), Col: l.col + 1}
	l.col++
	return 0, err
}

// scan converts text to an expression.
func scan(src string) (calculator.Expression, error) {
	var units []calculator.Unit
	l := lex(src)
	for {
		u, err := l.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return calculator.Expression{}, err
		}
		units = append(units, u)
	}
	return calculator.NewExpression(units...)
}

// LexError indicates text that does not spell any unit. It implements
// calculator.InputError.
type LexError struct {
	// Text is the first rune that could not be scanned.
	Text string
	// Col is the 1-based column of the rune.
	Col int
}

func (err *LexError) Error() string {
	return "invalid token at column " + strconv.Itoa(err.Col) + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}

var _ calculator.InputError = (*LexError)(nil)
