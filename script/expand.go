// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package script

import (
	"iter"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Expand replaces every $(expr) in the source with the decimal text of the
// starlark expression's value. Defines are predeclared as integers or
// floats; defines that are neither are ignored.
func (src Source) Expand(defines iter.Seq2[string, string]) (out Source, err error) {
	pred := starlark.StringDict{}
	if defines != nil {
		for key, str := range defines {
			value, ok := defineValue(str)
			if !ok {
				continue
			}
			pred[key] = value
		}
	}

	text := []rune(src.Text)

	var sb strings.Builder
	for n := 0; n < len(text); n++ {
		if text[n] != '$' || n+1 >= len(text) || text[n+1] != '(' {
			sb.WriteRune(text[n])
			continue
		}

		end := closingParen(text, n+2)
		if end < 0 {
			err = &ErrExpand{Offset: n + 1, Expr: string(text[n+2:]), Err: ErrExpandUnbalanced}
			return
		}

		expr := string(text[n+2 : end])
		var value string
		value, err = evaluate(expr, pred)
		if err != nil {
			err = &ErrExpand{Offset: n + 1, Expr: expr, Err: err}
			return
		}
		sb.WriteString(value)
		n = end
	}

	out = Source{
		Name: src.Name,
		Text: sb.String(),
	}

	return
}

// closingParen returns the index of the ')' balancing an already opened
// '(' when scanning from start, or -1.
func closingParen(text []rune, start int) int {
	depth := 1
	for n := start; n < len(text); n++ {
		switch text[n] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return n
			}
		}
	}
	return -1
}

// defineValue converts a define's text to a starlark number.
func defineValue(str string) (value starlark.Value, ok bool) {
	if v64, err := strconv.ParseInt(str, 0, 64); err == nil {
		return starlark.MakeInt64(v64), true
	}
	if f64, err := strconv.ParseFloat(str, 64); err == nil {
		return starlark.Float(f64), true
	}
	return nil, false
}

// evaluate runs a single expression and formats its numeric result.
func evaluate(expr string, pred starlark.StringDict) (value string, err error) {
	thread := starlark.Thread{Name: "expand"}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	switch rc := dict["rc"].(type) {
	case starlark.Int:
		value = rc.String()
	case starlark.Float:
		value = strconv.FormatFloat(float64(rc), 'f', -1, 64)
	default:
		err = ErrExpandValue
	}

	return
}
