package cmd

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"catmerge/pkg/pipeline"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	buildCfgFile string
	buildInput   string
	buildOutput  string
)

//nolint:gochecknoglobals // Cobra commands are typically global
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the merged catalog from a directory of source spreadsheets",
	Long: `Loads every .xlsx file in the input directory, reconciles their columns
onto the canonical schema, merges duplicate products and writes the unified
catalog to the output file.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildCfgFile, "config", "catmerge.yaml", "config file (optional)")
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "source directory (overrides config)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file (overrides config)")
}

// loadBuildConfig loads the pipeline configuration from a YAML file. A
// missing file is fine: the compiled-in schema and paths apply.
func loadBuildConfig(file string) (*pipeline.Config, error) {
	if file == "" {
		file = "catmerge.yaml"
	}

	config := &pipeline.Config{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	yamlFile, err := os.ReadFile(file) //nolint:gosec // User-provided config file path
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	return config, nil
}

func runBuild(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	config, err := loadBuildConfig(buildCfgFile)
	if err != nil {
		return err
	}

	if buildInput != "" {
		config.InputDir = buildInput
	}
	if buildOutput != "" {
		config.Output = buildOutput
	}

	logger.Info("Configuration loaded")

	svc, err := pipeline.NewService(logger, config)
	if err != nil {
		return err
	}

	return svc.Run()
}
