//go:build !windows

package scan

// shortPathExpander returns nil: 8.3 short paths only exist on NTFS hosts
// and expanding them needs the Windows API.
func shortPathExpander() func(string) string {
	return nil
}
