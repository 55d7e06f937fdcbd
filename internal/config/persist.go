package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/A-LKT/DiskPeek/internal/cache"
)

const (
	configDirName  = "diskpeek"
	configFileName = "config.json"
)

func DefaultConfig() Config {
	return Config{
		Path:             ".",
		ExcludedFolders:  []string{".git", "node_modules", ".cache"},
		MaxScanDepth:     0,
		CacheMaxAgeDays:  7,
		MaxChildrenShown: 0,
		CacheDir:         cache.DefaultDir(),
	}
}

func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, configDirName, configFileName)
}

func LoadConfig() (Config, error) {
	config := DefaultConfig()
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	var stored fileConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return config, err
	}
	return mergeConfig(config, stored), nil
}

func SaveConfig(config Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeConfig(base Config, stored fileConfig) Config {
	merged := base
	if stored.Path != nil {
		merged.Path = *stored.Path
	}
	if stored.ExcludedFolders != nil {
		merged.ExcludedFolders = stored.ExcludedFolders
	}
	if stored.MaxScanDepth != nil && *stored.MaxScanDepth >= 0 {
		merged.MaxScanDepth = *stored.MaxScanDepth
	}
	if stored.CacheMaxAgeDays != nil && *stored.CacheMaxAgeDays >= 0 {
		merged.CacheMaxAgeDays = *stored.CacheMaxAgeDays
	}
	if stored.MaxChildrenShown != nil && *stored.MaxChildrenShown >= 0 {
		merged.MaxChildrenShown = *stored.MaxChildrenShown
	}
	if stored.CacheDir != nil && *stored.CacheDir != "" {
		merged.CacheDir = *stored.CacheDir
	}
	return merged
}
