// Package utf8mod implements __module_utf8 (spec.md §6): a hand-rolled
// UTF-8 codec over object.ByteArray, grounded directly on
// original_source/src/emerald/utf8.c (em_utf8_getch/em_utf8_putch/
// em_utf8_getchlen) and original_source/src/emerald/module/utf8.c (the
// five builtins wrapping them). Go's unicode/utf8 isn't used here: the
// original never calls a libc facility for this either, and byte-level
// fidelity (invalid continuation bytes, the exact 1/2/3/4-byte length
// table) is easier to keep obviously correct against the original when
// it's written the same way.
package utf8mod

import (
	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/stdlib"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Register binds __module_utf8 into c's root scope.
func Register(c *evaluator.Context) {
	mod := object.NewMap()
	mod.Set(object.NewString("encodeInteger"), object.NewBuiltin("encodeInteger", encodeInteger))
	mod.Set(object.NewString("decodeInteger"), object.NewBuiltin("decodeInteger", decodeInteger))
	mod.Set(object.NewString("encode"), object.NewBuiltin("encode", encode))
	mod.Set(object.NewString("decode"), object.NewBuiltin("decode", decode))
	mod.Set(object.NewString("validateBytes"), object.NewBuiltin("validateBytes", validateBytes))
	c.Scopes[0].Set(object.NewString("__module_utf8"), mod)
}

func isByteMode(m object.ByteArrayMode) bool {
	return m == object.ModeU8 || m == object.ModeI8
}

// getch decodes one code point starting at src[0], mirroring
// em_utf8_getch exactly (same bit masks, same 1/2/3/4-byte cases).
// Returns (code, nbytes); nbytes is -1 on malformed input.
func getch(src []byte) (int, int) {
	if len(src) == 0 {
		return -1, -1
	}
	b0 := src[0]
	switch {
	case b0&0b11111000 == 0b11110000: // four byte
		if len(src) < 4 {
			return -1, -1
		}
		b1, b2, b3 := src[1], src[2], src[3]
		if b1&0b11000000 != 0b10000000 || b2&0b11000000 != 0b10000000 || b3&0b11000000 != 0b10000000 {
			return -1, -1
		}
		res := int(b0&0x7)<<18 | int(b1&0x3f)<<12 | int(b2&0x3f)<<6 | int(b3&0x3f)
		return res, 4
	case b0&0b11110000 == 0b11100000: // three byte
		if len(src) < 3 {
			return -1, -1
		}
		b1, b2 := src[1], src[2]
		if b1&0b11000000 != 0b10000000 || b2&0b11000000 != 0b10000000 {
			return -1, -1
		}
		res := int(b0&0xf)<<12 | int(b1&0x3f)<<6 | int(b2&0x3f)
		return res, 3
	case b0&0b11100000 == 0b11000000: // two byte
		if len(src) < 2 {
			return -1, -1
		}
		b1 := src[1]
		if b1&0b11000000 != 0b10000000 {
			return -1, -1
		}
		res := int(b0&0x1f)<<6 | int(b1&0x3f)
		return res, 2
	case b0&0b11000000 == 0b10000000: // stray continuation byte
		return -1, -1
	default: // one byte
		return int(b0 & 0x7f), 1
	}
}

// getchlen mirrors em_utf8_getchlen's code-point-to-byte-length table.
func getchlen(ch int) int {
	switch {
	case ch < 128:
		return 1
	case ch < 2048:
		return 2
	case ch < 65536:
		return 3
	case ch < 2097152:
		return 4
	default:
		return -1
	}
}

// putch mirrors em_utf8_putch, writing into dst[0:len] and returning the
// byte length, or -1 for an unencodable code point.
func putch(dst []byte, ch int) int {
	n := getchlen(ch)
	if n < 1 || n > 4 || len(dst) < n {
		return -1
	}
	switch n {
	case 4:
		dst[0] = byte((ch>>18)&0x7) | 0b11110000
		dst[1] = byte((ch>>12)&0x3f) | 0b10000000
		dst[2] = byte((ch>>6)&0x3f) | 0b10000000
		dst[3] = byte(ch&0x3f) | 0b10000000
	case 3:
		dst[0] = byte((ch>>12)&0xf) | 0b11100000
		dst[1] = byte((ch>>6)&0x3f) | 0b10000000
		dst[2] = byte(ch&0x3f) | 0b10000000
	case 2:
		dst[0] = byte((ch>>6)&0x1f) | 0b11000000
		dst[1] = byte(ch&0x3f) | 0b10000000
	case 1:
		dst[0] = byte(ch & 0x7f)
	}
	return n
}

func encodeInteger(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "encodeInteger", args, 2); err != nil {
		return nil, err
	}
	arr, err := stdlib.ByteArray(ev, pos, "encodeInteger", args, 0)
	if err != nil {
		return nil, err
	}
	code, err := stdlib.Int(ev, pos, "encodeInteger", args, 1)
	if err != nil {
		return nil, err
	}
	if arr.Size < 4 || !isByteMode(arr.Mode) {
		return nil, stdlib.InvalidArgs(ev, pos)
	}
	n := putch(arr.Data, int(code))
	if n < 1 || n > 4 {
		return nil, stdlib.ErrMsg(ev, pos, "Invalid Unicode code point")
	}
	return object.Int(n), nil
}

func decodeInteger(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "decodeInteger", args, 1); err != nil {
		return nil, err
	}
	arr, err := stdlib.ByteArray(ev, pos, "decodeInteger", args, 0)
	if err != nil {
		return nil, err
	}
	if arr.Size < 4 || !isByteMode(arr.Mode) {
		return nil, stdlib.InvalidArgs(ev, pos)
	}
	code, _ := getch(arr.Data[:4])
	if code < 0 {
		return nil, stdlib.ErrMsg(ev, pos, "Invalid UTF-8 bytes")
	}
	return object.Int(code), nil
}

func encode(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "encode", args, 2); err != nil {
		return nil, err
	}
	arr, err := stdlib.ByteArray(ev, pos, "encode", args, 0)
	if err != nil {
		return nil, err
	}
	s, err := stdlib.Str(ev, pos, "encode", args, 1)
	if err != nil {
		return nil, err
	}
	if !isByteMode(arr.Mode) {
		return nil, stdlib.InvalidArgs(ev, pos)
	}

	i := 0
	for _, r := range s {
		code := int(r)
		n := getchlen(code)
		if n < 0 || n > 4 {
			return nil, stdlib.ErrMsg(ev, pos, "Invalid Unicode code point")
		}
		if i+n > arr.Size {
			break
		}
		putch(arr.Data[i:], code)
		i += n
	}
	return object.Int(i), nil
}

// decode mirrors utf8_decode's "wb" signature: the string argument caps
// how many code points are pulled from the byte array, and (like
// os.c's readFile) is overwritten in place with the decoded text rather
// than a new string being allocated.
func decode(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "decode", args, 2); err != nil {
		return nil, err
	}
	s, ok := args[0].(*object.String)
	if !ok {
		return nil, stdlib.InvalidArgs(ev, pos)
	}
	arr, err := stdlib.ByteArray(ev, pos, "decode", args, 1)
	if err != nil {
		return nil, err
	}
	if !isByteMode(arr.Mode) {
		return nil, stdlib.InvalidArgs(ev, pos)
	}

	want := len([]rune(s.Value))
	runes := make([]rune, 0, want)
	nbytes := 0
	for i := 0; i < want && nbytes < arr.Size; i++ {
		end := nbytes + 4
		if end > arr.Size {
			end = arr.Size
		}
		code, n := getch(arr.Data[nbytes:end])
		if code < 0 {
			return nil, stdlib.ErrMsg(ev, pos, "Invalid UTF-8 bytes")
		}
		runes = append(runes, rune(code))
		nbytes += n
	}
	s.Value = string(runes)
	return object.Int(nbytes), nil
}

func validateBytes(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "validateBytes", args, 1); err != nil {
		return nil, err
	}
	arr, err := stdlib.ByteArray(ev, pos, "validateBytes", args, 0)
	if err != nil {
		return nil, err
	}
	if !isByteMode(arr.Mode) {
		return nil, stdlib.InvalidArgs(ev, pos)
	}

	nbytes := 0
	for nbytes < arr.Size {
		end := nbytes + 4
		if end > arr.Size {
			end = arr.Size
		}
		code, n := getch(arr.Data[nbytes:end])
		if code < 0 {
			return object.Int(0), nil
		}
		nbytes += n
	}
	return object.Int(1), nil
}
