package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/A-LKT/DiskPeek/internal/cache"
	"github.com/A-LKT/DiskPeek/internal/config"
	"github.com/A-LKT/DiskPeek/internal/services"
	"github.com/A-LKT/DiskPeek/internal/ui"
)

func Run() {
	base := config.DefaultConfig()
	loaded, err := config.LoadConfig()
	if err == nil {
		base = loaded
	}
	cfg := config.ParseFlags(base)

	scanner := services.NewFSScanner()
	store := cache.NewStore(cfg.CacheDir)

	model := ui.NewModel(cfg, scanner, store)
	if err != nil {
		model = model.WithStatus("Config warning: using defaults")
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		fmt.Println("DiskPeek error:", err)
		return
	}
	if provider, ok := finalModel.(ui.ConfigProvider); ok {
		if err := config.SaveConfig(provider.ConfigSnapshot()); err != nil {
			fmt.Println("DiskPeek config save error:", err)
		}
	}
}
