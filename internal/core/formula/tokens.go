package formula

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	numberCode
	identifierCode
	plusCode
	minusCode
	starCode
	slashCode
	percentCode
	openParenCode
	closeParenCode
	commaCode
	comparisonCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	numberToken     = parsly.NewToken(numberCode, "Number", newNumberMatcher())
	identifierToken = parsly.NewToken(identifierCode, "Identifier", newIdentifierMatcher())
	plusToken       = parsly.NewToken(plusCode, "+", matcher.NewByte('+'))
	minusToken      = parsly.NewToken(minusCode, "-", matcher.NewByte('-'))
	starToken       = parsly.NewToken(starCode, "*", matcher.NewByte('*'))
	slashToken      = parsly.NewToken(slashCode, "/", matcher.NewByte('/'))
	percentToken    = parsly.NewToken(percentCode, "%", matcher.NewByte('%'))
	openParenToken  = parsly.NewToken(openParenCode, "(", matcher.NewByte('('))
	closeParenToken = parsly.NewToken(closeParenCode, ")", matcher.NewByte(')'))
	commaToken      = parsly.NewToken(commaCode, ",", matcher.NewByte(','))
	comparisonToken = parsly.NewToken(comparisonCode, "Comparison", newComparisonMatcher())
)

func newNumberMatcher() parsly.Matcher {
	return &numberMatcher{}
}

func newIdentifierMatcher() parsly.Matcher {
	return &identifierMatcher{}
}

func newComparisonMatcher() parsly.Matcher {
	return &comparisonMatcher{}
}

// numberMatcher matches decimal literals: digits with at most one fractional dot.
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size || !isDigit(input[pos]) {
		return 0
	}

	matched := 1
	seenDot := false
	for i := pos + 1; i < size; i++ {
		if isDigit(input[i]) {
			matched++
			continue
		}
		if input[i] == '.' && !seenDot && i+1 < size && isDigit(input[i+1]) {
			seenDot = true
			matched += 2
			i++
			continue
		}
		break
	}
	return matched
}

// identifierMatcher matches variable and function names.
type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}
	if !isLetter(input[pos]) && input[pos] != '_' {
		return 0
	}

	matched := 1
	for i := pos + 1; i < size; i++ {
		if isLetter(input[i]) || isDigit(input[i]) || input[i] == '_' {
			matched++
			continue
		}
		break
	}
	return matched
}

// comparisonMatcher matches ==, !=, <=, >=, < and >.
type comparisonMatcher struct{}

func (m *comparisonMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}

	hasNext := pos+1 < size
	switch input[pos] {
	case '=', '!':
		if hasNext && input[pos+1] == '=' {
			return 2
		}
		return 0
	case '<', '>':
		if hasNext && input[pos+1] == '=' {
			return 2
		}
		return 1
	}
	return 0
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
