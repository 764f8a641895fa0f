package assessmentbundle

import (
	"therapist_dashboard/app/core"
)

// ScoreEntry is one submitted score value. The natural key is
// (client, instrument, field, recorded_at); the importer upserts on it.
type ScoreEntry struct {
	core.Model
	ClientId     uint          `json:"-" gorm:"unique_index:idx_scores_natural_key"`
	Client       *Client       `json:"client,omitempty"`
	InstrumentId uint          `json:"-" gorm:"unique_index:idx_scores_natural_key"`
	Instrument   *Instrument   `json:"instrument,omitempty"`
	FieldName    string        `json:"field_name" gorm:"unique_index:idx_scores_natural_key"`
	RecordedAt   core.NullTime `json:"recorded_at" gorm:"type:datetime;unique_index:idx_scores_natural_key"`
	Value        float64       `json:"value"`

	SessionNumber int    `json:"session_number,omitempty" gorm:"-"`
	Severity      string `json:"severity,omitempty" gorm:"-"`
}

type ScoreEntries []ScoreEntry

// Selection is the dashboard's current choice of therapist, instrument and
// score field. It is passed around explicitly instead of living in globals.
type Selection struct {
	TherapistId    uint   `json:"therapist_id,omitempty"`
	InstrumentCode string `json:"instrument"`
	FieldName      string `json:"field"`
}

type ClientTrajectory struct {
	ClientCode string       `json:"client_code"`
	Therapist  string       `json:"therapist,omitempty"`
	Entries    ScoreEntries `json:"entries"`
}

type AveragePoint struct {
	SessionNumber int     `json:"session_number"`
	Value         float64 `json:"value"`
}

type TrajectorySet struct {
	Instrument string             `json:"instrument"`
	FieldName  string             `json:"field"`
	Clients    []ClientTrajectory `json:"clients"`
	Average    []AveragePoint     `json:"average,omitempty"`
	MaxSession int                `json:"max_session"`
	MaxValue   float64            `json:"max_value"`
}

// BuildTrajectories pivots entries (already ordered by client code, then
// recorded_at) into per-client series with 1-based session numbers, and a
// cross-client average per session when more than one client is present.
func BuildTrajectories(field ScoreField, entries ScoreEntries) TrajectorySet {
	set := TrajectorySet{
		FieldName: field.Name,
		Clients:   []ClientTrajectory{},
	}

	sums := map[int]float64{}
	counts := map[int]int{}

	var current *ClientTrajectory
	for _, entry := range entries {
		code := ""
		therapist := ""
		if entry.Client != nil {
			code = entry.Client.Code
			if entry.Client.Therapist != nil {
				therapist = entry.Client.Therapist.Name
			}
		}
		if current == nil || current.ClientCode != code {
			set.Clients = append(set.Clients, ClientTrajectory{ClientCode: code, Therapist: therapist, Entries: ScoreEntries{}})
			current = &set.Clients[len(set.Clients)-1]
		}

		entry.SessionNumber = len(current.Entries) + 1
		entry.Severity = field.Classify(entry.Value)
		current.Entries = append(current.Entries, entry)

		if entry.SessionNumber > set.MaxSession {
			set.MaxSession = entry.SessionNumber
		}
		if entry.Value > set.MaxValue {
			set.MaxValue = entry.Value
		}
		sums[entry.SessionNumber] += entry.Value
		counts[entry.SessionNumber]++
	}

	if len(set.Clients) > 1 {
		for session := 1; session <= set.MaxSession; session++ {
			if counts[session] > 0 {
				set.Average = append(set.Average, AveragePoint{
					SessionNumber: session,
					Value:         sums[session] / float64(counts[session]),
				})
			}
		}
	}

	return set
}
