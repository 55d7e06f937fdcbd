//go:build !windows

package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// volumeIdentity derives a stable key for the volume holding path: the
// device id of the mounted filesystem when stat exposes one, then a
// capacity heuristic from statfs, then the bare label.
func volumeIdentity(path string) string {
	if info, err := os.Stat(path); err == nil {
		if stat, ok := info.Sys().(*syscall.Stat_t); ok {
			return fmt.Sprintf("dev-%d", uint64(stat.Dev))
		}
	}
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err == nil {
		return fmt.Sprintf("cap-%d-%d", uint64(stat.Bsize)*stat.Blocks, stat.Files)
	}
	return "label-" + volumeLabel(path)
}

func volumeLabel(path string) string {
	label := filepath.VolumeName(path)
	if label == "" {
		label = path
	}
	return label
}
