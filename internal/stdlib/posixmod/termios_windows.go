//go:build windows

package posixmod

// Windows has no termios; posix.c itself guards this pair out under
// `#if defined _WIN32` with no replacement body, so tcgetattr/tcsetattr
// simply report failure here rather than pretending to support it.
func platformTcgetattr(fd int) (rawTermios, bool) { return rawTermios{}, false }

func platformTcsetattr(fd int, action int, attr rawTermios) bool { return false }
