package commands

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/plugin"
)

// RegisterThemeCommands adds :theme and :themes.
//
//	:theme          show the active theme
//	:theme next     cycle to the next theme in name order
//	:theme NAME...  activate NAME (may contain spaces)
//	:themes         list every theme
func RegisterThemeCommands(api plugin.EditorAPI) {
	registerCommand(api, "theme", func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Current theme: %s", api.GetTheme().Name)
			return nil
		}
		name := strings.Join(args, " ")
		if len(args) == 1 && args[0] == "next" {
			name = nextTheme(api.ListThemes(), api.GetTheme().Name)
		}
		if err := api.SetTheme(name); err != nil {
			return fmt.Errorf("theme '%s' unavailable (have: %s): %w", name, strings.Join(api.ListThemes(), ", "), err)
		}
		api.SetStatusMessage("Theme: %s", api.GetTheme().Name)
		return nil
	})
	registerCommand(api, "themes", func([]string) error {
		api.SetStatusMessage("Available themes: %s", strings.Join(api.ListThemes(), ", "))
		return nil
	})
}

// nextTheme returns the name after current in names, wrapping around.
func nextTheme(names []string, current string) string {
	if len(names) == 0 {
		return current
	}
	for i, n := range names {
		if strings.EqualFold(n, current) {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func registerCommand(api plugin.EditorAPI, name string, fn plugin.CommandFunc) {
	if err := api.RegisterCommand(name, fn); err != nil {
		logger.Warnf("Failed to register ':%s' command: %v", name, err)
	}
}
