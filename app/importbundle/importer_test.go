package importbundle

import (
	"path/filepath"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"therapist_dashboard/app/assessmentbundle"
	"therapist_dashboard/app/core"
)

func newTestDB(t *testing.T) *gorm.DB {
	ormDB, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	ormDB.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { ormDB.Close() })

	core.Config.Database.DoAutoMigrate = true
	core.Config.Database.DoInsert = true
	assessmentbundle.NewAssessmentController(ormDB)
	ormDB.AutoMigrate(&ImportRun{})

	return ormDB
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, value := range values {
		row.AddCell().SetString(value)
	}
}

// writeWorkbook builds a small scoring workbook: two valid clients plus one
// row without a counsellor, EPDS responses including an unknown client and a
// row without a timestamp, and one ASRS row with a percent-formatted score.
func writeWorkbook(t *testing.T) string {
	file := xlsx.NewFile()

	clients, err := file.AddSheet(ExcelSheet_Clients)
	require.NoError(t, err)
	addRow(clients, ExcelHeader_ClientID, ExcelHeader_Counsellor, ExcelHeader_Age, ExcelHeader_Gender, ExcelHeader_ClientType, ExcelHeader_County)
	addRow(clients, "C1", "Alice", "34", "F", "Individual", "Cork")
	addRow(clients, "C2", "Bob", "41", "M", "Couples", "Kerry")
	addRow(clients, "C3", "", "29", "F", "Individual", "Clare")

	epdsDef, ok := assessmentbundle.FindInstrument(assessmentbundle.Instrument_EPDS)
	require.True(t, ok)
	epds, err := file.AddSheet(epdsDef.SheetName)
	require.NoError(t, err)
	addRow(epds, ExcelHeader_Timestamp, ExcelHeader_ClientCode, "EPDS Total Score (Max 30)", "Item 10 (Harming Self) Raw Score")
	addRow(epds, "2024-01-10 09:00:00", "C1", "12", "1")
	addRow(epds, "2024-01-17 09:00:00", "C1", "9", "0")
	addRow(epds, "2024-01-11 10:30:00", "C2", "22", "2")
	addRow(epds, "2024-01-12 11:00:00", "C9", "5", "0")
	addRow(epds, "", "C1", "7", "0")

	asrsDef, ok := assessmentbundle.FindInstrument(assessmentbundle.Instrument_ASRS)
	require.True(t, ok)
	asrs, err := file.AddSheet(asrsDef.SheetName)
	require.NoError(t, err)
	addRow(asrs, ExcelHeader_Timestamp, ExcelHeader_ClientCode, "Inattentive Subscale (%)")
	addRow(asrs, "2024-01-10 09:00:00", "C1", "67%")

	path := filepath.Join(t.TempDir(), "scoring.xlsx")
	require.NoError(t, file.Save(path))
	return path
}

func TestImportWorkbook(t *testing.T) {
	ormDB := newTestDB(t)
	path := writeWorkbook(t)

	summary, err := NewImporter(ormDB).ImportWorkbook(path)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ClientsImported)
	assert.Equal(t, 1, summary.ClientsSkipped)
	// three EPDS rows carry two score fields each, the ASRS row one
	assert.Equal(t, 7, summary.Imported)
	assert.Equal(t, 0, summary.Updated)
	// unknown client plus the row without a timestamp
	assert.Equal(t, 2, summary.Skipped)

	therapists := assessmentbundle.Therapists{}
	ormDB.Order("name").Find(&therapists)
	require.Len(t, therapists, 2)
	assert.Equal(t, "Alice", therapists[0].Name)
	assert.Equal(t, "Bob", therapists[1].Name)

	client := assessmentbundle.Client{}
	require.NoError(t, ormDB.Where("code = ?", "C1").First(&client).Error)
	assert.Equal(t, 34, client.Age)
	assert.Equal(t, "Cork", client.County)

	run := ImportRun{}
	require.NoError(t, ormDB.Last(&run).Error)
	assert.Equal(t, "scoring.xlsx", run.Source)
	assert.Equal(t, 7, run.Imported)
}

func TestImportWorkbookIsIdempotent(t *testing.T) {
	ormDB := newTestDB(t)
	path := writeWorkbook(t)

	importer := NewImporter(ormDB)
	_, err := importer.ImportWorkbook(path)
	require.NoError(t, err)

	summary, err := importer.ImportWorkbook(path)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Imported)
	assert.Equal(t, 0, summary.Updated)

	count := 0
	ormDB.Model(&assessmentbundle.ScoreEntry{}).Count(&count)
	assert.Equal(t, 7, count)
}

func TestImportWorkbookUpdatesChangedValues(t *testing.T) {
	ormDB := newTestDB(t)
	path := writeWorkbook(t)

	importer := NewImporter(ormDB)
	_, err := importer.ImportWorkbook(path)
	require.NoError(t, err)

	// same natural key, corrected total score
	file := xlsx.NewFile()
	clients, _ := file.AddSheet(ExcelSheet_Clients)
	addRow(clients, ExcelHeader_ClientID, ExcelHeader_Counsellor)
	addRow(clients, "C1", "Alice")
	epdsDef, _ := assessmentbundle.FindInstrument(assessmentbundle.Instrument_EPDS)
	epds, _ := file.AddSheet(epdsDef.SheetName)
	addRow(epds, ExcelHeader_Timestamp, ExcelHeader_ClientCode, "EPDS Total Score (Max 30)")
	addRow(epds, "2024-01-10 09:00:00", "C1", "14")
	corrected := filepath.Join(t.TempDir(), "corrected.xlsx")
	require.NoError(t, file.Save(corrected))

	summary, err := importer.ImportWorkbook(corrected)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Imported)
	assert.Equal(t, 1, summary.Updated)
}

func TestImportWorkbookPercentScores(t *testing.T) {
	ormDB := newTestDB(t)
	path := writeWorkbook(t)

	_, err := NewImporter(ormDB).ImportWorkbook(path)
	require.NoError(t, err)

	entry := assessmentbundle.ScoreEntry{}
	require.NoError(t, ormDB.Where("field_name = ?", "inattentive_percent").First(&entry).Error)
	assert.Equal(t, 67.0, entry.Value)
}

func TestImportWorkbookMissingClientsSheet(t *testing.T) {
	ormDB := newTestDB(t)

	file := xlsx.NewFile()
	_, err := file.AddSheet("Something Else")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, file.Save(path))

	_, err = NewImporter(ormDB).ImportWorkbook(path)
	assert.Error(t, err)
}

func TestImportWorkbookWarnsAboutMissingSheets(t *testing.T) {
	ormDB := newTestDB(t)
	path := writeWorkbook(t)

	summary, err := NewImporter(ormDB).ImportWorkbook(path)
	require.NoError(t, err)

	// BDI, BAI, ACE-Q and SADS sheets are absent, plus the unknown client
	assert.Len(t, summary.Warnings, 5)
}

func TestImportedScoresFeedTheDashboard(t *testing.T) {
	ormDB := newTestDB(t)
	path := writeWorkbook(t)

	_, err := NewImporter(ormDB).ImportWorkbook(path)
	require.NoError(t, err)

	controller := assessmentbundle.NewAssessmentController(ormDB)
	entries, err := controller.FetchScores(assessmentbundle.Selection{
		InstrumentCode: assessmentbundle.Instrument_EPDS,
		FieldName:      "total_score",
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	epdsDef, _ := assessmentbundle.FindInstrument(assessmentbundle.Instrument_EPDS)
	total, _ := epdsDef.Field("total_score")
	set := assessmentbundle.BuildTrajectories(total, entries)

	require.Len(t, set.Clients, 2)
	assert.Equal(t, "C1", set.Clients[0].ClientCode)
	require.Len(t, set.Clients[0].Entries, 2)
	assert.Equal(t, 12.0, set.Clients[0].Entries[0].Value)
	assert.Equal(t, 1, set.Clients[0].Entries[0].SessionNumber)
	assert.Equal(t, "Mild", set.Clients[0].Entries[0].Severity)
	assert.Equal(t, 2, set.Clients[0].Entries[1].SessionNumber)
}
