package importbundle

import (
	"fmt"
	"strings"

	"therapist_dashboard/app/core"
)

const (
	ExcelSheet_Clients = "Clients"

	ExcelHeader_ClientID   = "ID"
	ExcelHeader_Counsellor = "Counsellor Assn`"
	ExcelHeader_Age        = "Age"
	ExcelHeader_Gender     = "Gender"
	ExcelHeader_ClientType = "Client Type"
	ExcelHeader_County     = "county"

	ExcelHeader_Timestamp  = "Timestamp"
	ExcelHeader_ClientCode = "Client Code"
)

// ImportRun is the persisted record of one workbook import.
type ImportRun struct {
	core.Model
	Source          string        `json:"source"`
	StartedAt       core.NullTime `json:"started_at" gorm:"type:datetime"`
	FinishedAt      core.NullTime `json:"finished_at" gorm:"type:datetime"`
	ClientsImported int           `json:"clients_imported"`
	ClientsSkipped  int           `json:"clients_skipped"`
	Imported        int           `json:"imported"`
	Updated         int           `json:"updated"`
	Skipped         int           `json:"skipped"`
}

// ImportSummary is what one import reports back to its caller.
type ImportSummary struct {
	Source          string   `json:"source"`
	ClientsImported int      `json:"clients_imported"`
	ClientsSkipped  int      `json:"clients_skipped"`
	Imported        int      `json:"imported"`
	Updated         int      `json:"updated"`
	Skipped         int      `json:"skipped"`
	Warnings        []string `json:"warnings"`
}

func (summary ImportSummary) String() string {
	lines := []string{
		fmt.Sprintf("Import of %s finished", summary.Source),
		fmt.Sprintf("Clients: %d imported, %d skipped", summary.ClientsImported, summary.ClientsSkipped),
		fmt.Sprintf("Scores: %d imported, %d updated, %d skipped", summary.Imported, summary.Updated, summary.Skipped),
	}
	for _, warning := range summary.Warnings {
		lines = append(lines, "Warning: "+warning)
	}
	return strings.Join(lines, "\n")
}
