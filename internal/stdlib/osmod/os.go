// Package osmod implements __module_os (spec.md §6): sleep, file
// existence, and a small open-file-table abstraction over *os.File.
// Grounded on original_source/src/emerald/module/os.c — the flag bits
// (read=0x1, write=0x2, binary=0x4) and whence values (start=0, cursor=1,
// end=2) are reproduced exactly since they're part of the language's
// external contract (spec.md §6), even though Go's os package doesn't
// need bit flags internally.
package osmod

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/stdlib"
	"github.com/pixelthegreat/emerald/internal/token"
)

const (
	flagRead   = 0x1
	flagWrite  = 0x2
	flagBinary = 0x4

	whenceStart  = 0
	whenceCursor = 1
	whenceEnd    = 2
)

// openFile pairs the Go file handle with the flags it was opened with —
// the original's `files[MAX_FILES]` table, replaced by storing the
// handle directly in the file Map's userdata slot via a side table keyed
// by the Map's identity, since Go has no per-object userdata field.
type openFile struct {
	fp    *os.File
	flags int64
}

// files maps a file Map to its handle. Grounded on os.c's fixed-size
// files[] table; unbounded here since Go has no MAX_FILES-style static
// array to size.
var files = map[*object.Map]*openFile{}

// Register binds __module_os into c's root scope.
func Register(c *evaluator.Context) {
	mod := object.NewMap()

	sysinfo := object.NewMap()
	sysinfo.Set(object.NewString("name"), object.NewString(runtimeOSName()))
	mod.Set(object.NewString("info"), sysinfo)

	mod.Set(object.NewString("read"), object.Int(flagRead))
	mod.Set(object.NewString("write"), object.Int(flagWrite))
	mod.Set(object.NewString("binary"), object.Int(flagBinary))

	mod.Set(object.NewString("start"), object.Int(whenceStart))
	mod.Set(object.NewString("cursor"), object.Int(whenceCursor))
	mod.Set(object.NewString("end"), object.Int(whenceEnd))

	mod.Set(object.NewString("sleep"), object.NewBuiltin("sleep", osSleep))
	mod.Set(object.NewString("exists"), object.NewBuiltin("exists", osExists))
	mod.Set(object.NewString("openFile"), object.NewBuiltin("openFile", osOpenFile))
	mod.Set(object.NewString("readFile"), object.NewBuiltin("readFile", osReadFile))
	mod.Set(object.NewString("writeFile"), object.NewBuiltin("writeFile", osWriteFile))
	mod.Set(object.NewString("seekFile"), object.NewBuiltin("seekFile", osSeekFile))
	mod.Set(object.NewString("closeFile"), object.NewBuiltin("closeFile", osCloseFile))

	c.Scopes[0].Set(object.NewString("__module_os"), mod)
}

func runtimeOSName() string {
	if os.PathSeparator == '\\' {
		return "windows"
	}
	return "posix"
}

func osSleep(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "sleep", args, 1); err != nil {
		return nil, err
	}
	var seconds float64
	switch v := args[0].(type) {
	case object.Int:
		seconds = float64(v)
	case object.Float:
		seconds = float64(v)
	default:
		return nil, stdlib.InvalidArgs(ev, pos)
	}
	time.Sleep(time.Duration(seconds * float64(time.Second)))
	return object.None, nil
}

func osExists(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "exists", args, 1); err != nil {
		return nil, err
	}
	path, err := stdlib.Str(ev, pos, "exists", args, 0)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return object.Int(0), nil
	}
	return object.Int(1), nil
}

func osOpenFile(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "openFile", args, 2); err != nil {
		return nil, err
	}
	path, err := stdlib.Str(ev, pos, "openFile", args, 0)
	if err != nil {
		return nil, err
	}
	flags, err := stdlib.Int(ev, pos, "openFile", args, 1)
	if err != nil {
		return nil, err
	}

	var goFlags int
	switch flags &^ flagBinary {
	case flagRead:
		goFlags = os.O_RDONLY
	case flagWrite:
		goFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case flagRead | flagWrite:
		goFlags = os.O_RDWR | os.O_CREATE
	default:
		return nil, stdlib.ErrMsg(ev, pos, "Invalid mode flags")
	}

	fp, err := os.OpenFile(path, goFlags, 0644)
	if err != nil {
		return nil, stdlib.ErrMsg(ev, pos, "Can't open '%s': %s", path, err)
	}

	m := object.NewMap()
	files[m] = &openFile{fp: fp, flags: flags}
	return m, nil
}

func lookupFile(ev object.Evaluator, pos token.Position, args []object.Value, i int) (*object.Map, *openFile, error) {
	m, err := stdlib.Map(ev, pos, "file", args, i)
	if err != nil {
		return nil, nil, err
	}
	f, ok := files[m]
	if !ok || f.fp == nil {
		return nil, nil, stdlib.ErrMsg(ev, pos, "Not a file")
	}
	return m, f, nil
}

func osReadFile(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "readFile", args, 2); err != nil {
		return nil, err
	}
	_, f, err := lookupFile(ev, pos, args, 0)
	if err != nil {
		return nil, err
	}
	if f.flags&flagRead == 0 {
		return nil, stdlib.ErrMsg(ev, pos, "File is write-only")
	}

	if f.flags&flagBinary != 0 {
		arr, err := stdlib.ByteArray(ev, pos, "readFile", args, 1)
		if err != nil {
			return nil, err
		}
		if arr.Mode != object.ModeU8 {
			return nil, stdlib.ErrMsg(ev, pos, "Invalid byte array mode")
		}
		n, err := f.fp.Read(arr.Data)
		if err != nil && err != io.EOF {
			return nil, stdlib.ErrMsg(ev, pos, "%s", err)
		}
		return object.Int(n), nil
	}

	// Text mode matches os.c's os_readFile: the destination string's own
	// length caps how many code points are pulled from the file, and the
	// string is overwritten in place with what was actually read (the
	// original fills string->data directly rather than allocating a new
	// string).
	s, ok := args[1].(*object.String)
	if !ok {
		return nil, stdlib.InvalidArgs(ev, pos)
	}
	want := len([]rune(s.Value))
	runes := make([]rune, 0, want)
	raw := make([]byte, 0, 4)
	b := make([]byte, 1)
	for len(runes) < want {
		if _, err := f.fp.Read(b); err != nil {
			break
		}
		raw = append(raw, b[0])
		if !utf8.FullRune(raw) && len(raw) < 4 {
			continue
		}
		r, _ := utf8.DecodeRune(raw)
		runes = append(runes, r)
		raw = raw[:0]
	}
	s.Value = string(runes)
	return object.Int(len(runes)), nil
}

func osWriteFile(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "writeFile", args, 2); err != nil {
		return nil, err
	}
	_, f, err := lookupFile(ev, pos, args, 0)
	if err != nil {
		return nil, err
	}
	if f.flags&flagWrite == 0 {
		return nil, stdlib.ErrMsg(ev, pos, "File is read-only")
	}

	if f.flags&flagBinary != 0 {
		arr, err := stdlib.ByteArray(ev, pos, "writeFile", args, 1)
		if err != nil {
			return nil, err
		}
		if arr.Mode != object.ModeU8 {
			return nil, stdlib.ErrMsg(ev, pos, "Invalid byte array mode")
		}
		n, err := f.fp.Write(arr.Data)
		if err != nil {
			return nil, stdlib.ErrMsg(ev, pos, "%s", err)
		}
		return object.Int(n), nil
	}

	s, ok := args[1].(*object.String)
	if !ok {
		return nil, stdlib.InvalidArgs(ev, pos)
	}
	if _, err := fmt.Fprint(f.fp, s.Value); err != nil {
		return nil, stdlib.ErrMsg(ev, pos, "%s", err)
	}
	return object.Int(len([]rune(s.Value))), nil
}

func osSeekFile(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "seekFile", args, 3); err != nil {
		return nil, err
	}
	_, f, err := lookupFile(ev, pos, args, 0)
	if err != nil {
		return nil, err
	}
	whence, err := stdlib.Int(ev, pos, "seekFile", args, 1)
	if err != nil {
		return nil, err
	}
	position, err := stdlib.Int(ev, pos, "seekFile", args, 2)
	if err != nil {
		return nil, err
	}
	if whence < whenceStart || whence > whenceEnd {
		return nil, stdlib.InvalidArgs(ev, pos)
	}
	whences := [3]int{io.SeekStart, io.SeekCurrent, io.SeekEnd}

	if f.flags&flagWrite != 0 {
		f.fp.Sync()
	}
	newPos, err := f.fp.Seek(position, whences[whence])
	if err != nil {
		return nil, stdlib.ErrMsg(ev, pos, "%s", err)
	}
	return object.Int(newPos), nil
}

func osCloseFile(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "closeFile", args, 1); err != nil {
		return nil, err
	}
	m, f, err := lookupFile(ev, pos, args, 0)
	if err != nil {
		return nil, err
	}
	f.fp.Close()
	delete(files, m)
	return object.None, nil
}
