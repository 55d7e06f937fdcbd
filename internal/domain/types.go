package domain

import "time"

// ScanResult is the output of a completed scan. The cached totals mirror the
// root node's own aggregates.
type ScanResult struct {
	RootPath   string    `json:"rootPath"`
	ScanTime   time.Time `json:"scanTime"`
	TotalSize  int64     `json:"totalSize"`
	TotalFiles int       `json:"totalFiles"`
	TotalDirs  int       `json:"totalDirs"`
	Root       *Node     `json:"root"`
}

// NewScanResult stamps a result with the current time and the root's totals.
func NewScanResult(rootPath string, root *Node) *ScanResult {
	return &ScanResult{
		RootPath:   rootPath,
		ScanTime:   time.Now(),
		TotalSize:  root.Size,
		TotalFiles: root.FileCount,
		TotalDirs:  root.DirCount,
		Root:       root,
	}
}
