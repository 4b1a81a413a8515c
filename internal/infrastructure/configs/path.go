package configs

import (
	"os"

	"github.com/hilthontt/powersite/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file from the --config flag, the
// POWERSITE_CONFIG variable, or a list of conventional locations. An empty
// result means "defaults and environment only".
func DetermineConfigPath(flagValue string) string {
	configPath := flagValue

	if configPath == "" {
		configPath = env.GetString("POWERSITE_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"../../config.yaml", // keep for local dev
			"/etc/powersite/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
