// Package stdlib holds the small argument-checking helpers shared by
// every stdlib submodule (osmod, strmod, utf8mod, arraymod, posixmod,
// site). Grounded on original_source/src/emerald/util.c's
// em_util_parse_args: each builtin there validates arity and per-argument
// type up front before doing any work, returning EM_VALUE_FAIL (here: a
// Go error) on the first mismatch.
package stdlib

import (
	"fmt"

	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Arity fails unless len(args) == n.
func Arity(ev object.Evaluator, pos token.Position, name string, args []object.Value, n int) error {
	if len(args) != n {
		return ev.RuntimeError(pos, "%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

// Int extracts args[i] as an Int, failing with a descriptive message
// otherwise.
func Int(ev object.Evaluator, pos token.Position, name string, args []object.Value, i int) (int64, error) {
	n, ok := args[i].(object.Int)
	if !ok {
		return 0, ev.RuntimeError(pos, "%s: argument %d must be an Int, got %s", name, i+1, args[i].TypeName())
	}
	return int64(n), nil
}

// Str extracts args[i] as a *object.String.
func Str(ev object.Evaluator, pos token.Position, name string, args []object.Value, i int) (string, error) {
	s, ok := args[i].(*object.String)
	if !ok {
		return "", ev.RuntimeError(pos, "%s: argument %d must be a String, got %s", name, i+1, args[i].TypeName())
	}
	return s.Value, nil
}

// ByteArray extracts args[i] as a *object.ByteArray.
func ByteArray(ev object.Evaluator, pos token.Position, name string, args []object.Value, i int) (*object.ByteArray, error) {
	a, ok := args[i].(*object.ByteArray)
	if !ok {
		return nil, ev.RuntimeError(pos, "%s: argument %d must be an Array, got %s", name, i+1, args[i].TypeName())
	}
	return a, nil
}

// Map extracts args[i] as a *object.Map.
func Map(ev object.Evaluator, pos token.Position, name string, args []object.Value, i int) (*object.Map, error) {
	m, ok := args[i].(*object.Map)
	if !ok {
		return nil, ev.RuntimeError(pos, "%s: argument %d must be a Map, got %s", name, i+1, args[i].TypeName())
	}
	return m, nil
}

// InvalidArgs is the original's stock "Invalid arguments" runtime error,
// reused verbatim where a module function rejects a value for a reason
// other than plain arity/type (e.g. wrong ByteArray mode).
func InvalidArgs(ev object.Evaluator, pos token.Position) error {
	return ev.RuntimeError(pos, "Invalid arguments")
}

// ErrMsg is a convenience formatter matching em_log_runtime_error's
// free-form message builtins use for domain-specific failures.
func ErrMsg(ev object.Evaluator, pos token.Position, format string, args ...any) error {
	return ev.RuntimeError(pos, "%s", fmt.Sprintf(format, args...))
}
