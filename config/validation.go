package config

import (
	"fmt"
	"sort"
	"strings"
)

// ValidateConfig checks that everything the server cannot run without is
// present for the current environment.
func ValidateConfig(cfg *Config) error {
	required := map[string]string{
		"server port": cfg.ServerPort,
		"db host":     cfg.DBHost,
		"db port":     cfg.DBPort,
		"db user":     cfg.DBUser,
		"db name":     cfg.DBName,
		"jwt secret":  cfg.JWTSecret,
	}
	if IsProduction() {
		required["db password"] = cfg.DBPassword
		required["redis password"] = cfg.RedisPassword
	}

	var missing []string
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
