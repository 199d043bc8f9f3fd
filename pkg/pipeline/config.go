package pipeline

import (
	"fmt"

	"catmerge/pkg/schema"
)

// Config holds the pipeline configuration: where sources live, where the
// merged catalog goes, and the reconciliation schema.
type Config struct {
	// InputDir is the directory scanned for source .xlsx files.
	InputDir string `yaml:"inputDir" default:"data"`
	// Output is the path of the merged catalog file.
	Output string `yaml:"output" default:"merged_catalog.xlsx"`

	Schema schema.Config `yaml:"schema"`
}

// Validate fills schema defaults and checks the configuration.
func (c *Config) Validate() error {
	c.Schema.SetDefaults()
	if err := c.Schema.Validate(); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	return nil
}
