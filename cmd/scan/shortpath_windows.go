//go:build windows

package scan

import (
	"golang.org/x/sys/windows"
)

// shortPathExpander resolves NTFS 8.3 short paths to their long form
// through GetLongPathName. Paths the API cannot resolve are returned
// unchanged.
func shortPathExpander() func(string) string {
	return func(path string) string {
		p, err := windows.UTF16PtrFromString(path)
		if err != nil {
			return path
		}
		buf := make([]uint16, windows.MAX_PATH)
		n, err := windows.GetLongPathName(p, &buf[0], uint32(len(buf)))
		if err != nil {
			return path
		}
		if int(n) > len(buf) {
			buf = make([]uint16, n)
			n, err = windows.GetLongPathName(p, &buf[0], uint32(len(buf)))
			if err != nil || int(n) > len(buf) {
				return path
			}
		}
		return windows.UTF16ToString(buf[:n])
	}
}
