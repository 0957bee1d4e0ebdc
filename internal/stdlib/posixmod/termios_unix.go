//go:build !windows

package posixmod

import "golang.org/x/sys/unix"

// This file assumes the Linux unix.Termios field widths (Iflag/Oflag/
// Cflag/Lflag uint32, Cc [NCCS]byte) used by golang.org/x/sys/unix's
// linux build; BSD/Darwin widen some of these fields and would need
// their own conversions.

// actionToRequest maps a TCSANOW/TCSADRAIN/TCSAFLUSH action to the ioctl
// request tcsetattr(3) would pick, matching posix.c's direct pass-through
// of `actions` to the underlying tcsetattr(2) call.
func actionToRequest(action int) uint {
	switch action {
	case tcsadrain:
		return unix.TCSETSW
	case tcsaflush:
		return unix.TCSETSF
	default:
		return unix.TCSETS
	}
}

func platformTcgetattr(fd int) (rawTermios, bool) {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return rawTermios{}, false
	}
	var out rawTermios
	out.iflag = uint32(t.Iflag)
	out.oflag = uint32(t.Oflag)
	out.cflag = uint32(t.Cflag)
	out.lflag = uint32(t.Lflag)
	n := len(t.Cc)
	if n > NCCS {
		n = NCCS
	}
	for i := 0; i < n; i++ {
		out.cc[i] = byte(t.Cc[i])
	}
	return out, true
}

func platformTcsetattr(fd int, action int, attr rawTermios) bool {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		t = &unix.Termios{}
	}
	t.Iflag = uint32(attr.iflag)
	t.Oflag = uint32(attr.oflag)
	t.Cflag = uint32(attr.cflag)
	t.Lflag = uint32(attr.lflag)
	n := len(t.Cc)
	if n > NCCS {
		n = NCCS
	}
	for i := 0; i < n; i++ {
		t.Cc[i] = attr.cc[i]
	}
	return unix.IoctlSetTermios(fd, actionToRequest(action), t) == nil
}
