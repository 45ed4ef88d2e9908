//go:build windows

package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

// reserved in Windows file names, in addition to control characters
const reservedRunes = `<>":/\|?*` + string(os.PathSeparator) + string(os.PathListSeparator)

// CleanFileName makes name usable as a single path element: reserved and
// control characters are removed, surrounding spaces and dots are trimmed
// (Windows silently drops trailing ones).
func CleanFileName(in string) string {
	out := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(reservedRunes, r) {
			return -1
		}
		return r
	}, in)
	if out = strings.Trim(strings.TrimSpace(out), ". "); out == "" {
		return "_bad_file_name_"
	}
	return out
}

// VT100 sequences are understood by consoles starting with Windows 10.
func consoleSupportsVT() bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	major, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	return err == nil && major >= 10
}

const enableVirtualTerminalProcessing uint32 = 0x4

// EnableColorOutput reports whether stream is a console able to show colors,
// switching VT processing on for it. NO_COLOR disables colors altogether.
func EnableColorOutput(stream *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(stream.Fd())) || !consoleSupportsVT() {
		return false
	}

	h := windows.Handle(stream.Fd())
	var mode uint32
	if windows.GetConsoleMode(h, &mode) != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|enableVirtualTerminalProcessing) == nil
}
