package config

// Config is the settings surface consumed by the core. MaxScanDepth 0 means
// "use the scanner's built-in default"; MaxChildrenShown 0 means unlimited;
// CacheMaxAgeDays 0 disables the staleness banner.
type Config struct {
	Path             string   `json:"path"`
	ExcludedFolders  []string `json:"excludedFolders"`
	MaxScanDepth     int      `json:"maxScanDepth"`
	CacheMaxAgeDays  int      `json:"cacheMaxAgeDays"`
	MaxChildrenShown int      `json:"maxChildrenShown"`
	CacheDir         string   `json:"cacheDir"`
}

type fileConfig struct {
	Path             *string  `json:"path"`
	ExcludedFolders  []string `json:"excludedFolders"`
	MaxScanDepth     *int     `json:"maxScanDepth"`
	CacheMaxAgeDays  *int     `json:"cacheMaxAgeDays"`
	MaxChildrenShown *int     `json:"maxChildrenShown"`
	CacheDir         *string  `json:"cacheDir"`
}
