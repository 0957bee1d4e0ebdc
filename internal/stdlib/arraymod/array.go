// Package arraymod implements __module_array (spec.md §6): the
// ByteArray constructor and its mode constants. Grounded on
// original_source/src/emerald/module/array.c's array_Array builtin and
// modesizes table.
package arraymod

import (
	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/stdlib"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Register binds __module_array into c's root scope.
func Register(c *evaluator.Context) {
	mod := object.NewMap()

	mod.Set(object.NewString("char"), object.Int(object.ModeI8))
	mod.Set(object.NewString("unsignedChar"), object.Int(object.ModeU8))
	mod.Set(object.NewString("short"), object.Int(object.ModeI16))
	mod.Set(object.NewString("unsignedShort"), object.Int(object.ModeU16))
	mod.Set(object.NewString("int"), object.Int(object.ModeI32))
	mod.Set(object.NewString("unsignedInt"), object.Int(object.ModeU32))
	mod.Set(object.NewString("long"), object.Int(object.ModeI64))

	mod.Set(object.NewString("Array"), object.NewBuiltin("Array", arrayNew))

	c.Scopes[0].Set(object.NewString("__module_array"), mod)
}

// arrayNew implements `Array(size, mode)` (array_Array in
// module/array.c): size must be >= 1, mode must be one of the seven
// valid modes.
func arrayNew(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "Array", args, 2); err != nil {
		return nil, err
	}
	size, err := stdlib.Int(ev, pos, "Array", args, 0)
	if err != nil {
		return nil, err
	}
	mode, err := stdlib.Int(ev, pos, "Array", args, 1)
	if err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, stdlib.ErrMsg(ev, pos, "Array size must be at least 1")
	}
	if mode < int64(object.ModeI8) || mode > int64(object.ModeI64) {
		return nil, stdlib.ErrMsg(ev, pos, "Invalid array mode")
	}
	return object.NewByteArray(object.ByteArrayMode(mode), int(size)), nil
}
