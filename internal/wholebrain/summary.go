package wholebrain

import (
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// LogSummary logs, per parcellation, the participant count and the mean
// and standard deviation of each whole-brain metric across the cohort.
func LogSummary(rows []Metrics) {
	groups := GroupByParcellation(rows)
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		group := groups[label]
		od := make([]float64, len(group))
		icvf := make([]float64, len(group))
		isovf := make([]float64, len(group))
		for i, m := range group {
			od[i] = m.OD
			icvf[i] = m.ICVF
			isovf[i] = m.IsoVF
		}
		log.Info().Str("parcellation", label).Int("participants", len(group)).
			Float64("whole_od_mean", stat.Mean(od, nil)).Float64("whole_od_sd", cohortStdDev(od)).
			Float64("whole_icvf_mean", stat.Mean(icvf, nil)).Float64("whole_icvf_sd", cohortStdDev(icvf)).
			Float64("whole_isovf_mean", stat.Mean(isovf, nil)).Float64("whole_isovf_sd", cohortStdDev(isovf)).
			Msg("cohort summary")
	}
}

// cohortStdDev is zero for a single-participant cohort, where the sample
// standard deviation is undefined.
func cohortStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}
