package roitable

import (
	"github.com/danmuck/noddictl/internal/tsv"
)

// Tissue-type reference table column names.
const (
	ColumnTissueRegion = "name"
	ColumnTissueType   = "tissue_type"
)

// TissueGrayMatter is the tissue-type label for gray matter.
const TissueGrayMatter = "GM"

// TissueTypes maps a region name to its tissue type. Loaded once at
// startup and never mutated afterwards.
type TissueTypes map[string]string

// LoadTissueTypes parses the region-to-tissue-type reference TSV at path.
func LoadTissueTypes(path string) (TissueTypes, error) {
	sheet, err := tsv.Read(path)
	if err != nil {
		return nil, err
	}
	if err := sheet.RequireColumns(ColumnTissueRegion, ColumnTissueType); err != nil {
		return nil, err
	}

	types := make(TissueTypes, len(sheet.Rows))
	for i := range sheet.Rows {
		region, err := sheet.Field(i, ColumnTissueRegion)
		if err != nil {
			return nil, err
		}
		tissue, err := sheet.Field(i, ColumnTissueType)
		if err != nil {
			return nil, err
		}
		if region == "" {
			continue
		}
		types[region] = tissue
	}
	return types, nil
}

// Lookup returns the tissue type for a region name.
func (t TissueTypes) Lookup(region string) (string, bool) {
	tissue, ok := t[region]
	return tissue, ok
}
