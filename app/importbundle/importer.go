package importbundle

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/jinzhu/gorm"
	"github.com/tealeg/xlsx"

	"therapist_dashboard/app/assessmentbundle"
	"therapist_dashboard/app/core"
)

type Importer struct {
	ormDB *gorm.DB
}

func NewImporter(ormDB *gorm.DB) *Importer {
	return &Importer{ormDB: ormDB}
}

// clientAttributes is the part of a client row the workbook is allowed to
// overwrite on re-import. Copying through it keeps ids and timestamps intact.
type clientAttributes struct {
	TherapistId uint
	Age         int
	Gender      string
	ClientType  string
	County      string
}

// ImportWorkbook reads the scoring workbook at path and upserts therapists,
// clients and score entries. A missing Clients sheet aborts the import; a
// missing instrument sheet only produces a warning. Re-importing the same
// workbook is a no-op apart from the Updated counter when values changed.
func (i *Importer) ImportWorkbook(path string) (ImportSummary, error) {
	summary := ImportSummary{Source: filepath.Base(path), Warnings: []string{}}
	startedAt := core.Now()

	file, err := xlsx.OpenFile(path)
	if err != nil {
		return summary, err
	}

	clientsSheet, ok := file.Sheet[ExcelSheet_Clients]
	if !ok {
		return summary, fmt.Errorf("workbook has no %q sheet", ExcelSheet_Clients)
	}
	i.importClients(clientsSheet, &summary)

	for _, def := range assessmentbundle.InstrumentCatalog() {
		sheet := findScoringSheet(file, def.SheetName)
		if sheet == nil {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("sheet %q not found, skipping %s", def.SheetName, def.Code))
			continue
		}
		i.importResponses(def, sheet, &summary)
	}

	run := ImportRun{
		Source:          summary.Source,
		StartedAt:       startedAt,
		FinishedAt:      core.Now(),
		ClientsImported: summary.ClientsImported,
		ClientsSkipped:  summary.ClientsSkipped,
		Imported:        summary.Imported,
		Updated:         summary.Updated,
		Skipped:         summary.Skipped,
	}
	i.ormDB.Create(&run)

	return summary, nil
}

func (i *Importer) importClients(sheet *xlsx.Sheet, summary *ImportSummary) {
	if len(sheet.Rows) < 2 {
		return
	}
	headers := GetHeaderIndexes(sheet.Rows[0])

	for _, row := range sheet.Rows[1:] {
		if isEmptyExcelRow(row) {
			continue
		}

		code := getString(row, headers, ExcelHeader_ClientID)
		counsellor := getString(row, headers, ExcelHeader_Counsellor)
		if code == "" || counsellor == "" {
			summary.ClientsSkipped++
			continue
		}

		therapist := i.upsertTherapist(counsellor)
		attributes := clientAttributes{
			TherapistId: therapist.ID,
			Age:         getInt(row, headers, ExcelHeader_Age),
			Gender:      getString(row, headers, ExcelHeader_Gender),
			ClientType:  getString(row, headers, ExcelHeader_ClientType),
			County:      getString(row, headers, ExcelHeader_County),
		}

		client := assessmentbundle.Client{}
		i.ormDB.Where("code = ?", code).First(&client)
		copier.Copy(&client, &attributes)
		if client.ID == 0 {
			client.Code = code
			i.ormDB.Create(&client)
		} else {
			i.ormDB.Save(&client)
		}
		summary.ClientsImported++
	}
}

func (i *Importer) importResponses(def assessmentbundle.InstrumentDefinition, sheet *xlsx.Sheet, summary *ImportSummary) {
	if len(sheet.Rows) < 2 {
		return
	}
	headers := GetHeaderIndexes(sheet.Rows[0])

	if _, ok := headers[ExcelHeader_ClientCode]; !ok {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("sheet %q has no %q column", def.SheetName, ExcelHeader_ClientCode))
		return
	}
	if _, ok := headers[ExcelHeader_Timestamp]; !ok {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("sheet %q has no %q column", def.SheetName, ExcelHeader_Timestamp))
		return
	}

	instrument := i.upsertInstrument(def)

	for _, row := range sheet.Rows[1:] {
		if isEmptyExcelRow(row) {
			continue
		}

		code := getString(row, headers, ExcelHeader_ClientCode)
		if code == "" {
			summary.Skipped++
			continue
		}
		recordedAt, ok := getTime(row, headers, ExcelHeader_Timestamp)
		if !ok {
			summary.Skipped++
			continue
		}

		client := assessmentbundle.Client{}
		i.ormDB.Where("code = ?", code).First(&client)
		if client.ID == 0 {
			summary.Skipped++
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("%s: unknown client %q", def.Code, code))
			continue
		}

		parsed := 0
		for _, field := range def.Fields {
			value, ok := getScoreValue(row, headers, field)
			if !ok {
				continue
			}
			i.upsertScore(client.ID, instrument.ID, field.Name, recordedAt, value, summary)
			parsed++
		}
		if parsed == 0 {
			summary.Skipped++
		}
	}
}

func (i *Importer) upsertTherapist(name string) assessmentbundle.Therapist {
	therapist := assessmentbundle.Therapist{}
	i.ormDB.Where("name = ?", name).First(&therapist)
	if therapist.ID == 0 {
		therapist.Name = name
		i.ormDB.Create(&therapist)
	}
	return therapist
}

func (i *Importer) upsertInstrument(def assessmentbundle.InstrumentDefinition) assessmentbundle.Instrument {
	instrument := assessmentbundle.Instrument{}
	i.ormDB.Where("code = ?", def.Code).First(&instrument)
	if instrument.ID == 0 {
		instrument.Code = def.Code
		instrument.Name = def.Name
		i.ormDB.Create(&instrument)
	}
	return instrument
}

func (i *Importer) upsertScore(clientId uint, instrumentId uint, fieldName string, recordedAt core.NullTime, value float64, summary *ImportSummary) {
	entry := assessmentbundle.ScoreEntry{}
	i.ormDB.Where("client_id = ? AND instrument_id = ? AND field_name = ? AND recorded_at = ?",
		clientId, instrumentId, fieldName, recordedAt.Time).First(&entry)

	if entry.ID == 0 {
		entry.ClientId = clientId
		entry.InstrumentId = instrumentId
		entry.FieldName = fieldName
		entry.RecordedAt = recordedAt
		entry.Value = value
		i.ormDB.Create(&entry)
		summary.Imported++
		return
	}
	if entry.Value != value {
		entry.Value = value
		i.ormDB.Save(&entry)
		summary.Updated++
	}
}

// findScoringSheet matches the catalog sheet name exactly, or as a suffix for
// workbooks that still carry the long form titles.
func findScoringSheet(file *xlsx.File, name string) *xlsx.Sheet {
	if sheet, ok := file.Sheet[name]; ok {
		return sheet
	}
	for _, sheet := range file.Sheets {
		if strings.HasSuffix(strings.TrimSpace(sheet.Name), name) {
			return sheet
		}
	}
	return nil
}

func GetHeaderIndexes(row *xlsx.Row) map[string]int {
	headers := map[string]int{}
	for index, cell := range row.Cells {
		name := strings.TrimSpace(cell.String())
		if name != "" {
			headers[name] = index
		}
	}
	return headers
}

func getString(row *xlsx.Row, headers map[string]int, name string) string {
	index, ok := headers[name]
	if !ok || index >= len(row.Cells) {
		return ""
	}
	return strings.TrimSpace(row.Cells[index].String())
}

func getInt(row *xlsx.Row, headers map[string]int, name string) int {
	index, ok := headers[name]
	if !ok || index >= len(row.Cells) {
		return 0
	}
	value, err := row.Cells[index].Int()
	if err != nil {
		return 0
	}
	return value
}

// getTime reads a timestamp cell, either an Excel serial date or a text date.
// The result is truncated to seconds so re-imports hit the same DATETIME value.
func getTime(row *xlsx.Row, headers map[string]int, name string) (core.NullTime, bool) {
	index, ok := headers[name]
	if !ok || index >= len(row.Cells) {
		return core.NullTime{}, false
	}
	cell := row.Cells[index]

	if value, err := cell.Float(); err == nil && value > 0 {
		return core.NullTime{Time: xlsx.TimeFromExcelTime(value, false).Truncate(time.Second), Valid: true}, true
	}

	recordedAt := core.NullTime{}
	recordedAt.FromString(strings.TrimSpace(cell.String()))
	if !recordedAt.Valid {
		return core.NullTime{}, false
	}
	recordedAt.Time = recordedAt.Time.Truncate(time.Second)
	return recordedAt, true
}

// getScoreValue reads one score cell. Percentage fields may carry a trailing
// percent sign in the workbook.
func getScoreValue(row *xlsx.Row, headers map[string]int, field assessmentbundle.ScoreField) (float64, bool) {
	index, ok := headers[field.Header]
	if !ok || index >= len(row.Cells) {
		return 0, false
	}
	cell := row.Cells[index]

	raw := strings.TrimSpace(cell.String())
	if raw == "" {
		return 0, false
	}
	if field.IsPercent && strings.HasSuffix(raw, "%") {
		value, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(raw, "%")), 64)
		if err != nil {
			return 0, false
		}
		return value, true
	}

	if value, err := cell.Float(); err == nil {
		return value, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func isEmptyExcelRow(row *xlsx.Row) bool {
	for _, cell := range row.Cells {
		if strings.TrimSpace(cell.String()) != "" {
			return false
		}
	}
	return true
}
