// Package strmod implements __module_string (spec.md §6): `format`,
// grounded on original_source/src/emerald/module/string.c's
// string_format — a single-pass scan supporting `{N}` indexed
// placeholders, a bare `{}` using the next auto-incrementing index, and
// `{{` as an escaped literal `{`.
package strmod

import (
	"strings"

	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/stdlib"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Register binds __module_string into c's root scope.
func Register(c *evaluator.Context) {
	mod := object.NewMap()
	mod.Set(object.NewString("format"), object.NewBuiltin("format", format))
	c.Scopes[0].Set(object.NewString("__module_string"), mod)
}

// format implements `format(fmt_str, ...values)`. Every trailing
// argument is converted via to_string up front, exactly as
// string_format does before it ever scans the format string.
func format(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if len(args) < 1 {
		return nil, stdlib.Arity(ev, pos, "format", args, 1)
	}
	fstr, err := stdlib.Str(ev, pos, "format", args, 0)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		s, err := object.ToString(ev, a)
		if err != nil {
			return nil, err
		}
		values = append(values, s)
	}

	var b strings.Builder
	index := 0
	runes := []rune(fstr)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '{' {
			b.WriteRune(c)
			continue
		}

		// c == '{': either an escaped "{{", a bare "{}", or "{N}".
		j := i + 1
		if j < len(runes) && runes[j] == '{' {
			b.WriteRune('{')
			i = j
			continue
		}

		digitsStart := j
		for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
			j++
		}
		if j >= len(runes) || runes[j] != '}' {
			return nil, stdlib.ErrMsg(ev, pos, "Unclosed format specifier")
		}

		idx := index
		if j > digitsStart {
			idx = 0
			for _, d := range runes[digitsStart:j] {
				idx = idx*10 + int(d-'0')
			}
		}
		if idx < 0 || idx >= len(values) {
			return nil, stdlib.ErrMsg(ev, pos, "Invalid index")
		}
		b.WriteString(values[idx])
		index = idx + 1
		i = j
	}
	return object.NewString(b.String()), nil
}
