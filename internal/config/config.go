package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/noddictl/internal/wholebrain"
)

// DefaultTissueTypesPath is the deployment's FreeSurfer tissue-type
// reference table, overridable via the run config.
const DefaultTissueTypesPath = "/scratch/juyu/ScanD_SCC/templates/desc-FreeSurferAll_dseg_with_tissue_type.tsv"

// RunConfig carries the tunable parts of a batch run. Everything has a
// default; a config file only needs the keys it changes.
type RunConfig struct {
	TissueTypesPath string `toml:"tissue_types"`
	GMParcellation  string `toml:"gm_parcellation"`
	GMTissueType    string `toml:"gm_tissue_type"`
	OutputTemplate  string `toml:"output_template"`
}

// DefaultRunConfig returns the canonical run configuration.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		TissueTypesPath: DefaultTissueTypesPath,
		GMParcellation:  "aparcaseg",
		GMTissueType:    "GM",
		OutputTemplate:  wholebrain.DefaultOutputTemplate,
	}
}

// LoadRunConfig reads a TOML run config at path over the defaults.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := loadToml(path, &cfg); err != nil {
		return RunConfig{}, err
	}
	if err := ValidateRunConfig(cfg); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// ValidateRunConfig rejects configs that would make the batch misbehave
// silently.
func ValidateRunConfig(cfg RunConfig) error {
	if strings.TrimSpace(cfg.TissueTypesPath) == "" {
		return fmt.Errorf("run config missing tissue_types path")
	}
	if strings.TrimSpace(cfg.GMParcellation) == "" {
		return fmt.Errorf("run config missing gm_parcellation")
	}
	if strings.TrimSpace(cfg.GMTissueType) == "" {
		return fmt.Errorf("run config missing gm_tissue_type")
	}
	if !strings.Contains(cfg.OutputTemplate, wholebrain.OutputPlaceholder) {
		return fmt.Errorf("run config output_template must contain %s", wholebrain.OutputPlaceholder)
	}
	return nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}
