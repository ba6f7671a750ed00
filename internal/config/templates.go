package config

import (
	"fmt"
	"os"
)

// Template returns a starter run-config TOML with every key at its
// default value.
func Template() string {
	return runTemplate
}

// WriteTemplate writes the starter run config to path. Existing files
// are preserved unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(runTemplate), 0o600)
}

const runTemplate = `tissue_types = "` + DefaultTissueTypesPath + `"
gm_parcellation = "aparcaseg"
gm_tissue_type = "GM"
output_template = "desc-{parcellation}_wholebrainnoddi.csv"
`
