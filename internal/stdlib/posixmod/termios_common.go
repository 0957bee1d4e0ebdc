package posixmod

// NCCS mirrors glibc's bits/termios.h control-character array size,
// matching original_source/include/emerald/module/posix.h's NCCS.
const NCCS = 32

// tcsetattr action values (TCSANOW/TCSADRAIN/TCSAFLUSH) are identical
// across glibc and BSD libc, so they're declared once here rather than
// per platform file.
const (
	tcsanow   = 0
	tcsadrain = 1
	tcsaflush = 2
)

// rawTermios is the platform-neutral shape tcgetattr/tcsetattr marshal
// to/from an Emerald Map's c_iflag/c_oflag/c_cflag/c_lflag/c_cc fields.
type rawTermios struct {
	iflag, oflag, cflag, lflag uint32
	cc                         [NCCS]byte
}

var (
	origStdin      rawTermios
	origStdinOK    bool
	stdinModified  bool
)

// saveOriginalStdinState mirrors posix.c's initialize(), which calls
// tcgetattr(0, &original) unconditionally at module load so destroy()
// has something to restore stdin to if tcsetattr(0, ...) was ever used.
func saveOriginalStdinState() {
	if origStdinOK {
		return
	}
	if attr, ok := platformTcgetattr(0); ok {
		origStdin = attr
		origStdinOK = true
	}
}

func markStdinModified() { stdinModified = true }

// RestoreStdin mirrors posix.c's destroy(), which only calls
// tcsetattr(0, TCSANOW, &original) if stdin's mode was ever changed.
// cmd/emerald calls this via defer so an interactive session that put
// the terminal into raw mode always leaves it sane on exit.
func RestoreStdin() {
	if !stdinModified || !origStdinOK {
		return
	}
	platformTcsetattr(0, int(tcsanow), origStdin)
}

// termiosConstants is the full set posix.c exposes via em_util_set_value
// SET_FLAG calls: tcsetattr actions, the four flag groups, c_cc indices,
// and NCCS. Values are the standard POSIX/glibc ones so scripts that
// only read/compose these constants behave the same on every platform,
// even though tcgetattr/tcsetattr themselves are unix-only.
func termiosConstants() map[string]int64 {
	return map[string]int64{
		"TCSANOW":   int64(tcsanow),
		"TCSADRAIN": int64(tcsadrain),
		"TCSAFLUSH": int64(tcsaflush),

		"IGNBRK": 0000001,
		"BRKINT": 0000002,
		"IGNPAR": 0000004,
		"PARMRK": 0000010,
		"INPCK":  0000020,
		"ISTRIP": 0000040,
		"INLCR":  0000100,
		"IGNCR":  0000200,
		"ICRNL":  0000400,
		"IXON":   0002000,
		"IXANY":  0004000,
		"IXOFF":  0010000,

		"OPOST":  0000001,
		"ONLCR":  0000004,
		"OCRNL":  0000010,
		"ONOCR":  0000020,
		"ONLRET": 0000040,
		"OFILL":  0100000,
		"OFDEL":  0200000,

		"CSIZE":  0000060,
		"CS5":    0000000,
		"CS6":    0000020,
		"CS7":    0000040,
		"CS8":    0000060,
		"CSTOPB": 0000100,
		"CREAD":  0000200,
		"PARENB": 0000400,
		"PARODD": 0001000,
		"HUPCL":  0002000,
		"CLOCAL": 0004000,

		"ISIG":   0000001,
		"ICANON": 0000002,
		"ECHO":   0000010,
		"ECHOE":  0000020,
		"ECHOK":  0000040,
		"ECHONL": 0000100,
		"NOFLSH": 0000200,
		"TOSTOP": 0000400,
		"IEXTEN": 0100000,

		"VINTR":  0,
		"VQUIT":  1,
		"VERASE": 2,
		"VKILL":  3,
		"VEOF":   4,
		"VTIME":  5,
		"VMIN":   6,
		"VSTART": 8,
		"VSTOP":  9,
		"VSUSP":  10,
		"VEOL":   11,

		"NCCS": NCCS,
	}
}
