// Package posixmod implements __module_posix (spec.md §6): a thin
// wrapper over raw fd read/write, strerror, and termios get/set.
// Grounded on original_source/src/emerald/module/posix.c — function
// names, argument order, and the full termios flag constant set are
// reproduced exactly. The two termios syscalls are platform-split
// (termios_unix.go / termios_windows.go) since Windows has no termios.
package posixmod

import (
	"syscall"

	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/stdlib"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Register binds __module_posix into c's root scope, capturing the
// controlling terminal's original attributes the way posix.c's
// initialize() does via a bare tcgetattr(0, &original) before anything
// else touches stdin's mode.
func Register(c *evaluator.Context) {
	saveOriginalStdinState()

	mod := object.NewMap()

	mod.Set(object.NewString("strerror"), object.NewBuiltin("strerror", posixStrerror))
	mod.Set(object.NewString("read"), object.NewBuiltin("read", posixRead))
	mod.Set(object.NewString("write"), object.NewBuiltin("write", posixWrite))
	mod.Set(object.NewString("tcgetattr"), object.NewBuiltin("tcgetattr", posixTcgetattr))
	mod.Set(object.NewString("tcsetattr"), object.NewBuiltin("tcsetattr", posixTcsetattr))

	for name, v := range termiosConstants() {
		mod.Set(object.NewString(name), object.Int(v))
	}

	c.Scopes[0].Set(object.NewString("__module_posix"), mod)
}

func posixStrerror(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	errno := int64(0)
	if len(args) > 0 {
		n, err := stdlib.Int(ev, pos, "strerror", args, 0)
		if err != nil {
			return nil, err
		}
		errno = n
	} else if err := stdlib.Arity(ev, pos, "strerror", args, 0); err != nil {
		return nil, err
	}
	return object.NewString(syscall.Errno(errno).Error()), nil
}

func posixRead(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "read", args, 3); err != nil {
		return nil, err
	}
	fd, err := stdlib.Int(ev, pos, "read", args, 0)
	if err != nil {
		return nil, err
	}
	arr, err := stdlib.ByteArray(ev, pos, "read", args, 1)
	if err != nil {
		return nil, err
	}
	count, err := stdlib.Int(ev, pos, "read", args, 2)
	if err != nil {
		return nil, err
	}
	if arr.Mode != object.ModeU8 || count > int64(arr.Size) {
		return nil, stdlib.InvalidArgs(ev, pos)
	}
	n, err := syscall.Read(int(fd), arr.Data[:count])
	if err != nil {
		return object.Int(-1), nil
	}
	return object.Int(n), nil
}

func posixWrite(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "write", args, 3); err != nil {
		return nil, err
	}
	fd, err := stdlib.Int(ev, pos, "write", args, 0)
	if err != nil {
		return nil, err
	}
	arr, err := stdlib.ByteArray(ev, pos, "write", args, 1)
	if err != nil {
		return nil, err
	}
	count, err := stdlib.Int(ev, pos, "write", args, 2)
	if err != nil {
		return nil, err
	}
	if arr.Mode != object.ModeU8 || count >= int64(arr.Size) {
		return nil, stdlib.InvalidArgs(ev, pos)
	}
	n, err := syscall.Write(int(fd), arr.Data[:count])
	if err != nil {
		return object.Int(-1), nil
	}
	return object.Int(n), nil
}

func posixTcgetattr(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "tcgetattr", args, 2); err != nil {
		return nil, err
	}
	fd, err := stdlib.Int(ev, pos, "tcgetattr", args, 0)
	if err != nil {
		return nil, err
	}
	m, err := stdlib.Map(ev, pos, "tcgetattr", args, 1)
	if err != nil {
		return nil, err
	}

	attr, ok := platformTcgetattr(int(fd))
	if !ok {
		return object.Int(-1), nil
	}

	m.Set(object.NewString("c_iflag"), object.Int(int64(attr.iflag)))
	m.Set(object.NewString("c_oflag"), object.Int(int64(attr.oflag)))
	m.Set(object.NewString("c_cflag"), object.Int(int64(attr.cflag)))
	m.Set(object.NewString("c_lflag"), object.Int(int64(attr.lflag)))

	if cc, ok := m.GetStr("c_cc"); ok {
		if arr, ok := cc.(*object.ByteArray); ok {
			for i := 0; i < len(attr.cc) && i < arr.Size; i++ {
				arr.SetIndex(object.Int(i), object.Int(int64(attr.cc[i])))
			}
		}
	}
	return object.Int(0), nil
}

func posixTcsetattr(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "tcsetattr", args, 3); err != nil {
		return nil, err
	}
	fd, err := stdlib.Int(ev, pos, "tcsetattr", args, 0)
	if err != nil {
		return nil, err
	}
	actions, err := stdlib.Int(ev, pos, "tcsetattr", args, 1)
	if err != nil {
		return nil, err
	}
	m, err := stdlib.Map(ev, pos, "tcsetattr", args, 2)
	if err != nil {
		return nil, err
	}

	var attr rawTermios
	if v, ok := m.GetStr("c_iflag"); ok {
		if n, ok := v.(object.Int); ok {
			attr.iflag = uint32(n)
		}
	}
	if v, ok := m.GetStr("c_oflag"); ok {
		if n, ok := v.(object.Int); ok {
			attr.oflag = uint32(n)
		}
	}
	if v, ok := m.GetStr("c_cflag"); ok {
		if n, ok := v.(object.Int); ok {
			attr.cflag = uint32(n)
		}
	}
	if v, ok := m.GetStr("c_lflag"); ok {
		if n, ok := v.(object.Int); ok {
			attr.lflag = uint32(n)
		}
	}
	if cc, ok := m.GetStr("c_cc"); ok {
		if arr, ok := cc.(*object.ByteArray); ok {
			for i := 0; i < len(attr.cc) && i < arr.Size; i++ {
				v, _ := arr.GetIndex(object.Int(i))
				if n, ok := v.(object.Int); ok {
					attr.cc[i] = byte(n)
				}
			}
		}
	}

	if fd == 0 {
		markStdinModified()
	}
	if !platformTcsetattr(int(fd), int(actions), attr) {
		return object.Int(-1), nil
	}
	return object.Int(0), nil
}
