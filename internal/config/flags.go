package config

import "flag"

func ParseFlags(base Config) Config {
	path := flag.String("path", base.Path, "Root path to scan")
	maxDepth := flag.Int("max-depth", base.MaxScanDepth, "Scan depth (0 = built-in default)")
	maxAge := flag.Int("cache-max-age", base.CacheMaxAgeDays, "Cache age in days before the stale banner (0 = never)")
	maxShown := flag.Int("max-children", base.MaxChildrenShown, "Children shown per directory (0 = unlimited)")
	flag.Parse()

	base.Path = *path
	if *maxDepth >= 0 {
		base.MaxScanDepth = *maxDepth
	}
	if *maxAge >= 0 {
		base.CacheMaxAgeDays = *maxAge
	}
	if *maxShown >= 0 {
		base.MaxChildrenShown = *maxShown
	}
	return base
}
