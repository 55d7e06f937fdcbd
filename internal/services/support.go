package services

import (
	"path/filepath"
	"strings"
)

// ScanProgress is a fire-and-forget notification of the path currently being
// visited. Delivery is best-effort: messages may be coalesced or dropped
// under load and carry no correctness obligation.
type ScanProgress struct {
	Path       string
	Files      int64
	Completed  bool
	ErrMessage string
}

func progressNonBlocking(ch chan<- ScanProgress, msg ScanProgress) {
	select {
	case ch <- msg:
	default:
	}
}

// exclusionSet lowercases the configured names once so matching during the
// walk is a single map probe.
func exclusionSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		set[strings.ToLower(trimmed)] = struct{}{}
	}
	return set
}

func isExcluded(set map[string]struct{}, name string) bool {
	if set == nil {
		return false
	}
	_, excluded := set[strings.ToLower(name)]
	return excluded
}

func cleanPath(path string) string {
	if path == "" {
		return path
	}
	clean := filepath.Clean(path)
	abs, err := filepath.Abs(clean)
	if err != nil {
		return clean
	}
	return abs
}

func baseName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return path
	}
	return name
}
