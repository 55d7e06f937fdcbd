package config

import "testing"

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestMergeConfigOverlaysOnlyStoredFields(t *testing.T) {
	base := DefaultConfig()
	merged := mergeConfig(base, fileConfig{
		Path:         strPtr("/data"),
		MaxScanDepth: intPtr(3),
	})
	if merged.Path != "/data" {
		t.Errorf("path = %q, want /data", merged.Path)
	}
	if merged.MaxScanDepth != 3 {
		t.Errorf("maxScanDepth = %d, want 3", merged.MaxScanDepth)
	}
	if merged.CacheMaxAgeDays != base.CacheMaxAgeDays {
		t.Error("absent field must keep the default")
	}
	if len(merged.ExcludedFolders) != len(base.ExcludedFolders) {
		t.Error("absent exclusion list must keep the default")
	}
}

func TestMergeConfigRejectsNegatives(t *testing.T) {
	base := DefaultConfig()
	merged := mergeConfig(base, fileConfig{
		MaxScanDepth:    intPtr(-1),
		CacheMaxAgeDays: intPtr(-5),
	})
	if merged.MaxScanDepth != base.MaxScanDepth || merged.CacheMaxAgeDays != base.CacheMaxAgeDays {
		t.Error("negative stored values must be ignored")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxScanDepth != 0 {
		t.Error("default depth override should be 0 (scanner default)")
	}
	if cfg.CacheDir == "" {
		t.Error("default cache dir must be set")
	}
	if len(cfg.ExcludedFolders) == 0 {
		t.Error("default exclusions missing")
	}
}
