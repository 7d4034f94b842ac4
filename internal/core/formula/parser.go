package formula

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/viant/parsly"
)

// Parse turns a formula string into an AST. The grammar admits decimal literals,
// identifiers, calls to whitelisted functions, unary +/-, the arithmetic operators
// + - * / % and the comparison operators == != < <= > >=. Anything else, including
// attribute access and unconsumed trailing input, is a syntax error.
func Parse(input string) (Node, error) {
	cursor := parsly.NewCursor("", []byte(input), 0)
	node, err := parseComparison(cursor)
	if err != nil {
		return nil, err
	}

	// The whole input must be consumed; a trailing '.' or '[' would otherwise
	// smuggle in syntax the grammar does not admit.
	cursor.MatchOne(whitespaceToken)
	if cursor.Pos < cursor.InputSize {
		return nil, fmt.Errorf("%w: unexpected input at offset %d: %q",
			ErrSyntax, cursor.Pos, string(cursor.Input[cursor.Pos:]))
	}
	return node, nil
}

func parseComparison(cursor *parsly.Cursor) (Node, error) {
	left, err := parseAdditive(cursor)
	if err != nil {
		return nil, err
	}
	for {
		matched := cursor.MatchAfterOptional(whitespaceToken, comparisonToken)
		if matched.Code != comparisonCode {
			return left, nil
		}
		op := matched.Text(cursor)
		right, err := parseAdditive(cursor)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func parseAdditive(cursor *parsly.Cursor) (Node, error) {
	left, err := parseMultiplicative(cursor)
	if err != nil {
		return nil, err
	}
	for {
		matched := cursor.MatchAfterOptional(whitespaceToken, plusToken, minusToken)
		var op string
		switch matched.Code {
		case plusCode:
			op = "+"
		case minusCode:
			op = "-"
		default:
			return left, nil
		}
		right, err := parseMultiplicative(cursor)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func parseMultiplicative(cursor *parsly.Cursor) (Node, error) {
	left, err := parseUnary(cursor)
	if err != nil {
		return nil, err
	}
	for {
		matched := cursor.MatchAfterOptional(whitespaceToken, starToken, slashToken, percentToken)
		var op string
		switch matched.Code {
		case starCode:
			op = "*"
		case slashCode:
			op = "/"
		case percentCode:
			op = "%"
		default:
			return left, nil
		}
		right, err := parseUnary(cursor)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func parseUnary(cursor *parsly.Cursor) (Node, error) {
	matched := cursor.MatchAfterOptional(whitespaceToken, minusToken, plusToken)
	switch matched.Code {
	case minusCode:
		operand, err := parseUnary(cursor)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "-", Operand: operand}, nil
	case plusCode:
		operand, err := parseUnary(cursor)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "+", Operand: operand}, nil
	}
	return parsePrimary(cursor)
}

func parsePrimary(cursor *parsly.Cursor) (Node, error) {
	matched := cursor.MatchAfterOptional(whitespaceToken, numberToken, identifierToken, openParenToken)
	switch matched.Code {
	case numberCode:
		text := matched.Text(cursor)
		value, err := decimal.NewFromString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, text)
		}
		return &NumberLit{Value: value}, nil

	case identifierCode:
		name := matched.Text(cursor)
		// A following '(' makes this a call; otherwise it is a variable reference.
		matched = cursor.MatchAfterOptional(whitespaceToken, openParenToken)
		if matched.Code != openParenCode {
			return &VarRef{Name: name}, nil
		}
		return parseCallArgs(cursor, name)

	case openParenCode:
		node, err := parseComparison(cursor)
		if err != nil {
			return nil, err
		}
		matched = cursor.MatchAfterOptional(whitespaceToken, closeParenToken)
		if matched.Code != closeParenCode {
			return nil, fmt.Errorf("%w: missing closing parenthesis", ErrSyntax)
		}
		return node, nil
	}
	return nil, fmt.Errorf("%w: expected number, identifier or parenthesis at offset %d",
		ErrSyntax, cursor.Pos)
}

func parseCallArgs(cursor *parsly.Cursor, name string) (Node, error) {
	call := &CallExpr{Name: name}

	matched := cursor.MatchAfterOptional(whitespaceToken, closeParenToken)
	if matched.Code == closeParenCode {
		return nil, fmt.Errorf("%w: %s() requires at least one argument", ErrSyntax, name)
	}

	for {
		arg, err := parseComparison(cursor)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		matched = cursor.MatchAfterOptional(whitespaceToken, commaToken, closeParenToken)
		switch matched.Code {
		case commaCode:
			continue
		case closeParenCode:
			return call, nil
		default:
			return nil, fmt.Errorf("%w: expected ',' or ')' in %s(...)", ErrSyntax, name)
		}
	}
}
