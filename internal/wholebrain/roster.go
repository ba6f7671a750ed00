package wholebrain

import (
	"github.com/danmuck/noddictl/internal/tsv"
)

// ColumnParticipantID is the required roster column.
const ColumnParticipantID = "participant_id"

// LoadRoster reads the participant roster TSV and returns the
// participant identifiers in file order, blanks skipped.
func LoadRoster(path string) ([]string, error) {
	sheet, err := tsv.Read(path)
	if err != nil {
		return nil, err
	}
	if err := sheet.RequireColumns(ColumnParticipantID); err != nil {
		return nil, err
	}

	participants := make([]string, 0, len(sheet.Rows))
	for i := range sheet.Rows {
		id, err := sheet.Field(i, ColumnParticipantID)
		if err != nil {
			return nil, err
		}
		if id == "" {
			continue
		}
		participants = append(participants, id)
	}
	return participants, nil
}
