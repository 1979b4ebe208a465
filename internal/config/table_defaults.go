package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"venueadmin/internal/domain/tablesettings"
)

//go:embed table_defaults.yaml
var embeddedTableDefaults []byte

// TableDefaults maps an entity name to its default table settings.
type TableDefaults map[string]tablesettings.TableSettings

// For returns the defaults for entity, or empty settings.
func (d TableDefaults) For(entity string) tablesettings.TableSettings {
	return d[entity].Clone()
}

// LoadTableDefaults parses the embedded defaults, replacing entries with the
// ones found in path when path is non-empty. Entities absent from the override
// file keep their embedded defaults.
// PRE: path is empty or a readable YAML file
// POST: Every returned entry passes TableSettings.Validate
func LoadTableDefaults(path string) (TableDefaults, error) {
	defaults, err := parseTableDefaults(embeddedTableDefaults)
	if err != nil {
		return nil, fmt.Errorf("embedded table defaults: %w", err)
	}
	if path == "" {
		return defaults, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table defaults: %w", err)
	}
	overrides, err := parseTableDefaults(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for entity, settings := range overrides {
		defaults[entity] = settings
	}
	return defaults, nil
}

func parseTableDefaults(data []byte) (TableDefaults, error) {
	defaults := TableDefaults{}
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	for entity, settings := range defaults {
		if err := tablesettings.ValidateEntity(entity); err != nil {
			return nil, fmt.Errorf("entity %q: %w", entity, err)
		}
		if err := settings.Validate(); err != nil {
			return nil, fmt.Errorf("entity %q: %w", entity, err)
		}
	}
	return defaults, nil
}
