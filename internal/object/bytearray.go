package object

import (
	"fmt"
)

// ByteArrayMode selects how a ByteArray's elements are read/written
// (spec.md §6's `char, unsignedChar, short, unsignedShort, int,
// unsignedInt, long` mode set, grounded on
// original_source/src/emerald/module/array.c's modesizes table — all
// seven modes are integer widths, matching `em_byte_array_get`'s return
// type of `em_inttype_t`; there is no floating-point mode).
type ByteArrayMode int

const (
	ModeI8  ByteArrayMode = iota // char
	ModeU8                      // unsignedChar
	ModeI16                     // short
	ModeU16                     // unsignedShort
	ModeI32                     // int
	ModeU32                     // unsignedInt
	ModeI64                     // long (em_inttype_t is `long`, taken as 64-bit)
)

func (m ByteArrayMode) elemSize() int {
	switch m {
	case ModeI8, ModeU8:
		return 1
	case ModeI16, ModeU16:
		return 2
	case ModeI32, ModeU32:
		return 4
	case ModeI64:
		return 8
	}
	return 1
}

// ByteArray is a fixed-size, mode-typed numeric buffer. Indexing
// decodes/encodes elements according to Mode rather than
// storing a []Value per slot, matching the original's single packed byte
// buffer.
type ByteArray struct {
	Mode ByteArrayMode
	Size int // element count
	Data []byte
}

func NewByteArray(mode ByteArrayMode, size int) *ByteArray {
	return &ByteArray{Mode: mode, Size: size, Data: make([]byte, size*mode.elemSize())}
}

func (*ByteArray) TypeName() string { return "Array" }
func (a *ByteArray) Truthy() bool   { return a.Size > 0 }

// Str matches original_source/src/emerald/module/array.c's to_string
// exactly: `snprintf(buf, 128, "<Byte array of size %zu>", array->size)`.
func (a *ByteArray) Str() string { return fmt.Sprintf("<Byte array of size %d>", a.Size) }
func (a *ByteArray) Len() int    { return a.Size }

func (a *ByteArray) normIndex(i int) int {
	if i < 0 {
		i += a.Size
	}
	return i
}

func (a *ByteArray) GetIndex(key Value) (Value, error) {
	idx, ok := key.(Int)
	if !ok {
		return nil, invalidOp("index")
	}
	i := a.normIndex(int(idx))
	if i < 0 || i >= a.Size {
		return nil, invalidOp("index out of range")
	}
	return a.decode(i), nil
}

func (a *ByteArray) SetIndex(key, val Value) error {
	idx, ok := key.(Int)
	if !ok {
		return invalidOp("index")
	}
	i := a.normIndex(int(idx))
	if i < 0 || i >= a.Size {
		return invalidOp("index out of range")
	}
	return a.encode(i, val)
}

func (a *ByteArray) off(i int) int { return i * a.Mode.elemSize() }

func (a *ByteArray) decode(i int) Value {
	off := a.off(i)
	switch a.Mode {
	case ModeI8:
		return Int(int8(a.Data[off]))
	case ModeU8:
		return Int(a.Data[off])
	case ModeI16:
		return Int(int16(uint16(a.Data[off]) | uint16(a.Data[off+1])<<8))
	case ModeU16:
		return Int(uint16(a.Data[off]) | uint16(a.Data[off+1])<<8)
	case ModeI32:
		return Int(int32(a.leU32(off)))
	case ModeU32:
		return Int(a.leU32(off))
	case ModeI64:
		return Int(int64(a.leU64(off)))
	}
	return None
}

func (a *ByteArray) leU32(off int) uint32 {
	return uint32(a.Data[off]) | uint32(a.Data[off+1])<<8 | uint32(a.Data[off+2])<<16 | uint32(a.Data[off+3])<<24
}

func (a *ByteArray) putU32(off int, v uint32) {
	a.Data[off] = byte(v)
	a.Data[off+1] = byte(v >> 8)
	a.Data[off+2] = byte(v >> 16)
	a.Data[off+3] = byte(v >> 24)
}

func (a *ByteArray) leU64(off int) uint64 {
	return uint64(a.leU32(off)) | uint64(a.leU32(off+4))<<32
}

func (a *ByteArray) putU64(off int, v uint64) {
	a.putU32(off, uint32(v))
	a.putU32(off+4, uint32(v>>32))
}

func (a *ByteArray) encode(i int, val Value) error {
	off := a.off(i)
	switch a.Mode {
	case ModeI8, ModeU8:
		n, ok := val.(Int)
		if !ok {
			return invalidOp("array element must be Int")
		}
		a.Data[off] = byte(n)
	case ModeI16, ModeU16:
		n, ok := val.(Int)
		if !ok {
			return invalidOp("array element must be Int")
		}
		a.Data[off] = byte(n)
		a.Data[off+1] = byte(n >> 8)
	case ModeI32, ModeU32:
		n, ok := val.(Int)
		if !ok {
			return invalidOp("array element must be Int")
		}
		a.putU32(off, uint32(n))
	case ModeI64:
		n, ok := val.(Int)
		if !ok {
			return invalidOp("array element must be Int")
		}
		a.putU64(off, uint64(n))
	}
	return nil
}
