package wholebrain

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/noddictl/internal/bids"
	"github.com/danmuck/noddictl/internal/roitable"
)

// SubjectPrefix is stripped from roster identifiers before layout lookup.
// Output rows keep the unstripped identifier.
const SubjectPrefix = "sub-"

// Query tags identifying NODDI ROI results files in the derivatives tree.
const (
	queryDatatype  = "dwi"
	queryModel     = "noddi"
	querySuffix    = "results"
	queryExtension = ".tsv"
)

// Sink receives each whole-brain row as it is produced, in addition to
// the CSV outputs written at the end of the batch.
type Sink interface {
	Put(Metrics) error
}

// Driver runs the batch: per-participant lookup, aggregation, and
// accumulation. Failures are isolated per participant and per table.
type Driver struct {
	layout *bids.Layout
	agg    Aggregator
	sink   Sink
}

// NewDriver builds a Driver. sink may be nil.
func NewDriver(layout *bids.Layout, agg Aggregator, sink Sink) *Driver {
	return &Driver{layout: layout, agg: agg, sink: sink}
}

// Run processes every roster participant and returns the accumulated
// whole-brain rows in encounter order. Per-participant and per-table
// failures are logged and skipped; Run itself does not fail.
func (d *Driver) Run(participants []string) []Metrics {
	all := make([]Metrics, 0, len(participants))
	for _, participant := range participants {
		all = append(all, d.runParticipant(participant)...)
	}
	return all
}

func (d *Driver) runParticipant(participant string) []Metrics {
	subject := strings.TrimPrefix(participant, SubjectPrefix)
	files := d.layout.Get(bids.Query{
		Subject:   subject,
		Datatype:  queryDatatype,
		Model:     queryModel,
		Suffix:    querySuffix,
		Extension: queryExtension,
	})
	if len(files) == 0 {
		log.Error().Str("participant", participant).Msg("no noddi results found")
		return nil
	}

	rows := make([]Metrics, 0, len(files))
	for _, f := range files {
		desc := f.Desc()
		if desc == "" {
			log.Error().Str("participant", participant).Str("path", f.Path).
				Msg("results file carries no desc entity")
			continue
		}
		table, err := roitable.Load(f.Path, desc)
		if err != nil {
			log.Error().Err(err).Str("participant", participant).Str("parcellation", desc).
				Msg("failed to load roi table")
			continue
		}
		m, err := d.agg.WholeBrain(table)
		if err != nil {
			log.Error().Err(err).Str("participant", participant).Str("parcellation", desc).
				Msg("failed to aggregate roi table")
			continue
		}
		m.ParticipantID = participant
		log.Debug().Str("participant", participant).Str("parcellation", desc).
			Float64("whole_od", m.OD).Float64("whole_icvf", m.ICVF).Float64("whole_isovf", m.IsoVF).
			Msg("aggregated")
		rows = append(rows, m)

		if d.sink != nil {
			if err := d.sink.Put(m); err != nil {
				log.Error().Err(err).Str("participant", participant).Str("parcellation", desc).
					Msg("failed to store whole-brain row")
			}
		}
	}
	return rows
}
