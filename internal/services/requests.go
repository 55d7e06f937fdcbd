package services

// ScanRequest describes one full scan. MaxDepth is the literal
// materialization depth: a request with MaxDepth 0 produces a single
// boundary root carrying exact totals and no children. Callers that treat
// zero as "use the default" substitute DefaultMaxDepth before building the
// request.
type ScanRequest struct {
	RootPath string
	Excluded []string
	MaxDepth int
}
