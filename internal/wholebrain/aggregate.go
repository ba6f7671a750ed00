package wholebrain

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/danmuck/noddictl/internal/roitable"
)

var ErrZeroWeight = errors.New("wholebrain: zero total voxel weight")

// Metrics is one whole-brain summary row: voxel-count-weighted means of
// the three NODDI metrics for one (participant, parcellation) pair.
type Metrics struct {
	ParticipantID string
	Parcellation  string
	OD            float64
	ICVF          float64
	IsoVF         float64
}

// Aggregator reduces one ROI table to one whole-brain Metrics row. It is
// a pure function of the table and the tissue-type reference it holds.
type Aggregator struct {
	tissues        roitable.TissueTypes
	gmParcellation string
	gmTissueType   string
}

// NewAggregator builds an Aggregator that restricts tables tagged with
// gmParcellation to regions whose tissue type equals gmTissueType.
func NewAggregator(tissues roitable.TissueTypes, gmParcellation, gmTissueType string) Aggregator {
	return Aggregator{
		tissues:        tissues,
		gmParcellation: gmParcellation,
		gmTissueType:   gmTissueType,
	}
}

// WholeBrain computes the voxel-count-weighted mean of each NODDI metric
// over the table's retained regions. Tables tagged with the gray-matter
// parcellation are first filtered to gray-matter regions; regions absent
// from the tissue-type reference are dropped. A zero total voxel count
// yields ErrZeroWeight rather than an undefined value.
func (a Aggregator) WholeBrain(t roitable.Table) (Metrics, error) {
	rows := t.Rows
	if t.Parcellation == a.gmParcellation {
		rows = a.filterGrayMatter(rows)
	}

	total := 0
	for _, row := range rows {
		total += row.VoxelCount
	}
	if total == 0 {
		return Metrics{}, fmt.Errorf("%w: parcellation %q (%s)", ErrZeroWeight, t.Parcellation, t.Path)
	}

	od := make([]float64, len(rows))
	icvf := make([]float64, len(rows))
	isovf := make([]float64, len(rows))
	weights := make([]float64, len(rows))
	for i, row := range rows {
		od[i] = row.ODMean
		icvf[i] = row.ICVFMean
		isovf[i] = row.IsoVFMean
		weights[i] = float64(row.VoxelCount)
	}

	return Metrics{
		Parcellation: t.Parcellation,
		OD:           stat.Mean(od, weights),
		ICVF:         stat.Mean(icvf, weights),
		IsoVF:        stat.Mean(isovf, weights),
	}, nil
}

func (a Aggregator) filterGrayMatter(rows []roitable.Row) []roitable.Row {
	kept := make([]roitable.Row, 0, len(rows))
	for _, row := range rows {
		tissue, ok := a.tissues.Lookup(row.Region)
		if !ok || tissue != a.gmTissueType {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}
