package assessmentbundle

import (
	"therapist_dashboard/app/core"
)

const (
	Instrument_EPDS = "EPDS"
	Instrument_BDI  = "BDI"
	Instrument_BAI  = "BAI"
	Instrument_ACEQ = "ACE-Q"
	Instrument_SADS = "SADS"
	Instrument_ASRS = "ASRS"
)

const Severity_Unclassified = "unclassified"

// Instrument is the persisted catalog row; the field and severity metadata
// lives in the in-code catalog below.
type Instrument struct {
	core.Model
	Code string `json:"code" gorm:"unique_index"`
	Name string `json:"name"`
}

type Instruments []Instrument

type SeverityBand struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Color string  `json:"color"`
}

type SeverityBands []SeverityBand

// Classify returns the label of the band containing value. Values outside
// every band are reported as unclassified, never as an error.
func (bands SeverityBands) Classify(value float64) string {
	for _, band := range bands {
		if value >= band.Lower && value <= band.Upper {
			return band.Label
		}
	}
	return Severity_Unclassified
}

type ScoreField struct {
	Name      string        `json:"name"`
	Label     string        `json:"label"`
	Header    string        `json:"-"` // column header in the workbook sheet
	Max       float64       `json:"max"`
	IsPercent bool          `json:"-"` // workbook cell may carry a trailing %
	Bands     SeverityBands `json:"bands,omitempty"`
}

func (f ScoreField) Classify(value float64) string {
	if len(f.Bands) == 0 {
		return ""
	}
	return f.Bands.Classify(value)
}

type InstrumentDefinition struct {
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	SheetName string       `json:"-"`
	Fields    []ScoreField `json:"fields"`
}

type InstrumentDefinitions []InstrumentDefinition

func (def InstrumentDefinition) Field(name string) (ScoreField, bool) {
	for _, field := range def.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return ScoreField{}, false
}

func FindInstrument(code string) (InstrumentDefinition, bool) {
	for _, def := range InstrumentCatalog() {
		if def.Code == code {
			return def, true
		}
	}
	return InstrumentDefinition{}, false
}

var epdsBands = SeverityBands{
	{Label: "Minimal", Lower: 0, Upper: 9, Color: "#90EE90"},
	{Label: "Mild", Lower: 10, Upper: 12, Color: "#FFFF00"},
	{Label: "Moderate", Lower: 13, Upper: 21, Color: "#FFA500"},
	{Label: "Severe", Lower: 22, Upper: 30, Color: "#FF0000"},
}

var bdiBands = SeverityBands{
	{Label: "Minimal", Lower: 0, Upper: 13, Color: "#90EE90"},
	{Label: "Mild", Lower: 14, Upper: 19, Color: "#FFFF00"},
	{Label: "Moderate", Lower: 20, Upper: 28, Color: "#FFA500"},
	{Label: "Severe", Lower: 29, Upper: 63, Color: "#FF0000"},
}

var baiBands = SeverityBands{
	{Label: "Minimal", Lower: 0, Upper: 7, Color: "#90EE90"},
	{Label: "Mild", Lower: 8, Upper: 15, Color: "#FFFF00"},
	{Label: "Moderate", Lower: 16, Upper: 25, Color: "#FFA500"},
	{Label: "Severe", Lower: 26, Upper: 63, Color: "#FF0000"},
}

var aceqBands = SeverityBands{
	{Label: "Low Risk", Lower: 0, Upper: 3, Color: "#90EE90"},
	{Label: "Moderate Risk", Lower: 4, Upper: 6, Color: "#FFA500"},
	{Label: "High Risk", Lower: 7, Upper: 10, Color: "#FF0000"},
}

var sadsBands = SeverityBands{
	{Label: "Low", Lower: 0, Upper: 30, Color: "#90EE90"},
	{Label: "Moderate", Lower: 31, Upper: 60, Color: "#FFA500"},
	{Label: "High", Lower: 61, Upper: 100, Color: "#FF0000"},
}

var asrsBands = SeverityBands{
	{Label: "Low", Lower: 0, Upper: 40, Color: "#90EE90"},
	{Label: "Moderate", Lower: 41, Upper: 60, Color: "#FFA500"},
	{Label: "High", Lower: 61, Upper: 100, Color: "#FF0000"},
}

// InstrumentCatalog lists the supported assessment instruments together with
// their workbook sheet names, score fields and severity tables.
func InstrumentCatalog() InstrumentDefinitions {
	return InstrumentDefinitions{
		{
			Code:      Instrument_EPDS,
			Name:      "Edinburgh Postnatal Depression Scale",
			SheetName: "EPDS Scoring",
			Fields: []ScoreField{
				{Name: "total_score", Label: "EPDS Total Score", Header: "EPDS Total Score (Max 30)", Max: 30, Bands: epdsBands},
				{Name: "item_10_score", Label: "Item 10 (Harming Self) Raw Score", Header: "Item 10 (Harming Self) Raw Score", Max: 3},
			},
		},
		{
			Code:      Instrument_BDI,
			Name:      "Beck's Depression Inventory",
			SheetName: "BDI Scoring",
			Fields: []ScoreField{
				{Name: "total_score", Label: "BDI Total", Header: "BDI Total", Max: 63, Bands: bdiBands},
			},
		},
		{
			Code:      Instrument_BAI,
			Name:      "Beck Anxiety Inventory",
			SheetName: "BAI Scoring",
			Fields: []ScoreField{
				{Name: "total_score", Label: "BAI Total Score", Header: "Total Score", Max: 63, Bands: baiBands},
			},
		},
		{
			Code:      Instrument_ACEQ,
			Name:      "Adverse Childhood Experiences Questionnaire",
			SheetName: "ACE-Q Scoring",
			Fields: []ScoreField{
				{Name: "total_score", Label: "Total ACE Score", Header: "Total ACE Score", Max: 10, Bands: aceqBands},
			},
		},
		{
			Code:      Instrument_SADS,
			Name:      "Social Avoidance and Distress Scale",
			SheetName: "SADS Scoring",
			Fields: []ScoreField{
				{Name: "avoidance_score", Label: "Social Avoidance Score", Header: "Social Avoidance Score", Max: 100, Bands: sadsBands},
				{Name: "distress_score", Label: "Social Distress Score", Header: "Social Distress Score", Max: 100, Bands: sadsBands},
				{Name: "total_score", Label: "Total SADS Score", Header: "Total SADS Score", Max: 100, Bands: sadsBands},
			},
		},
		{
			Code:      Instrument_ASRS,
			Name:      "Adult ADHD Self-Report Scale",
			SheetName: "ASRS Scoring",
			Fields: []ScoreField{
				{Name: "part_a_score", Label: "Part A Score", Header: "Part A Score", Max: 24},
				{Name: "part_b_score", Label: "Part B Score", Header: "Part B Score", Max: 48},
				{Name: "total_score", Label: "Total Score", Header: "Total Score", Max: 72, Bands: asrsBands},
				{Name: "inattentive_raw", Label: "Inattentive Subscale (Raw)", Header: "Inattentive Subscale (Raw)", Max: 36},
				{Name: "inattentive_percent", Label: "Inattentive Subscale (%)", Header: "Inattentive Subscale (%)", Max: 100, IsPercent: true, Bands: asrsBands},
				{Name: "hyperactivity_motor_raw", Label: "Hyperactivity-Motor Subscale (Raw)", Header: "Hyperactivity-Motor Subscale (Raw)", Max: 36},
				{Name: "hyperactivity_motor_percent", Label: "Hyperactivity-Motor Subscale (%)", Header: "Hyperactivity-Motor Subscale (%)", Max: 100, IsPercent: true, Bands: asrsBands},
				{Name: "hyperactivity_verbal_raw", Label: "Hyperactivity-Verbal Subscale (Raw)", Header: "Hyperactivity-Verbal Subscale (Raw)", Max: 36},
				{Name: "hyperactivity_verbal_percent", Label: "Hyperactivity-Verbal Subscale (%)", Header: "Hyperactivity-Verbal Subscale (%)", Max: 100, IsPercent: true, Bands: asrsBands},
			},
		},
	}
}
