package roitable

import (
	"fmt"

	"github.com/danmuck/noddictl/internal/tsv"
)

// Column names required of every ROI results table.
const (
	ColumnRegion     = "name"
	ColumnODMean     = "od_mean"
	ColumnICVFMean   = "icvf_mean"
	ColumnIsoVFMean  = "isovf_mean"
	ColumnVoxelCount = "n_vx_masked"
)

// Row is one anatomical region's mean NODDI metrics and the count of
// masked voxels that contributed to them.
type Row struct {
	Region     string
	ODMean     float64
	ICVFMean   float64
	IsoVFMean  float64
	VoxelCount int
}

// Table is one ROI results file tagged with its parcellation scheme.
type Table struct {
	Parcellation string
	Path         string
	Rows         []Row
}

// Load parses the ROI results TSV at path and tags it with the given
// parcellation-scheme label.
func Load(path, parcellation string) (Table, error) {
	sheet, err := tsv.Read(path)
	if err != nil {
		return Table{}, err
	}
	if err := sheet.RequireColumns(ColumnRegion, ColumnODMean, ColumnICVFMean, ColumnIsoVFMean, ColumnVoxelCount); err != nil {
		return Table{}, err
	}

	t := Table{
		Parcellation: parcellation,
		Path:         path,
		Rows:         make([]Row, 0, len(sheet.Rows)),
	}
	for i := range sheet.Rows {
		row, err := loadRow(sheet, i)
		if err != nil {
			return Table{}, err
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func loadRow(sheet *tsv.Sheet, i int) (Row, error) {
	var row Row
	var err error

	if row.Region, err = sheet.Field(i, ColumnRegion); err != nil {
		return Row{}, err
	}
	if row.ODMean, err = sheet.FloatField(i, ColumnODMean); err != nil {
		return Row{}, err
	}
	if row.ICVFMean, err = sheet.FloatField(i, ColumnICVFMean); err != nil {
		return Row{}, err
	}
	if row.IsoVFMean, err = sheet.FloatField(i, ColumnIsoVFMean); err != nil {
		return Row{}, err
	}
	if row.VoxelCount, err = sheet.IntField(i, ColumnVoxelCount); err != nil {
		return Row{}, err
	}
	if row.VoxelCount < 0 {
		return Row{}, fmt.Errorf("roitable: region %q has negative voxel count %d in %s", row.Region, row.VoxelCount, sheet.Path)
	}
	return row, nil
}
