package ui

import (
	"time"

	"github.com/A-LKT/DiskPeek/internal/domain"
	"github.com/A-LKT/DiskPeek/internal/services"
)

type cacheLoadedMsg struct {
	result   *domain.ScanResult
	cachedAt time.Time
	ok       bool
}

type scanResultMsg struct {
	result *domain.ScanResult
	err    error
}

type deepenResultMsg struct {
	node  *domain.Node
	fresh *domain.Node
	err   error
}

type scanProgressMsg struct {
	progress services.ScanProgress
}
