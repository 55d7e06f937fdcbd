//go:build windows

package cache

import (
	"path/filepath"
	"strings"
)

// volumeIdentity falls back to the drive label on Windows; the label is
// stable across sessions for fixed drives, which is all the cache needs.
func volumeIdentity(path string) string {
	label := filepath.VolumeName(path)
	if label == "" {
		label = path
	}
	return "label-" + strings.ToUpper(label)
}
