package assessmentbundle

import (
	"net/http"
	"strconv"

	"github.com/jinzhu/gorm"

	"therapist_dashboard/app/core"
)

// AssessmentController serves the read side of the dashboard.
type AssessmentController struct {
	core.Controller
	ormDB *gorm.DB
}

// NewAssessmentController instance
func NewAssessmentController(ormDB *gorm.DB) *AssessmentController {
	c := &AssessmentController{
		ormDB: ormDB,
	}

	if core.Config.Database.DoAutoMigrate {
		ormDB.AutoMigrate(&Therapist{}, &Client{}, &Instrument{}, &ScoreEntry{})

		if core.Config.Database.DoInsert {
			c.seedInstruments()
		}
	}

	return c
}

// seedInstruments inserts catalog rows that are not present yet; re-running is
// a no-op apart from renames.
func (c *AssessmentController) seedInstruments() {
	for _, def := range InstrumentCatalog() {
		instrument := Instrument{}
		c.ormDB.Where("code = ?", def.Code).First(&instrument)
		if instrument.ID == 0 {
			instrument = Instrument{Code: def.Code, Name: def.Name}
			c.ormDB.Create(&instrument)
		} else if instrument.Name != def.Name {
			instrument.Name = def.Name
			c.ormDB.Save(&instrument)
		}
	}
}

// FetchScores returns the entries for a selection, grouped by client and
// ordered by recording time within each client. A zero therapist id means all
// therapists. Unknown codes yield an empty result, not an error.
func (c *AssessmentController) FetchScores(selection Selection) (ScoreEntries, error) {
	entries := ScoreEntries{}

	instrument := Instrument{}
	c.ormDB.Where("code = ?", selection.InstrumentCode).First(&instrument)
	if instrument.ID == 0 {
		return entries, nil
	}

	db := c.ormDB.Set("gorm:auto_preload", false).
		Preload("Client").
		Preload("Client.Therapist").
		Joins("JOIN clients ON clients.id = score_entries.client_id").
		Where("score_entries.instrument_id = ?", instrument.ID).
		Where("score_entries.field_name = ?", selection.FieldName)
	if selection.TherapistId > 0 {
		db = db.Where("clients.therapist_id = ?", selection.TherapistId)
	}

	err := db.Order("clients.code, score_entries.recorded_at").Find(&entries).Error
	return entries, err
}

// GetTherapistsHandler lists therapists with their total client count and the
// distinct client count per assessment instrument.
func (c *AssessmentController) GetTherapistsHandler(w http.ResponseWriter, r *http.Request) {

	therapists := Therapists{}
	if err := c.ormDB.Order("name").Find(&therapists).Error; c.HandleError(err, w) {
		return
	}

	overviews := TherapistOverviews{}
	for _, therapist := range therapists {
		overview := TherapistOverview{Therapist: therapist, ToolCounts: map[string]int{}}

		c.ormDB.Model(&Client{}).Where("therapist_id = ?", therapist.ID).Count(&overview.TotalClients)

		for _, def := range InstrumentCatalog() {
			count := 0
			row := c.ormDB.Model(&ScoreEntry{}).
				Joins("JOIN clients ON clients.id = score_entries.client_id").
				Joins("JOIN instruments ON instruments.id = score_entries.instrument_id").
				Where("clients.therapist_id = ?", therapist.ID).
				Where("instruments.code = ?", def.Code).
				Select("COUNT(DISTINCT score_entries.client_id)").Row()
			row.Scan(&count)
			overview.ToolCounts[def.Code] = count
		}

		overviews = append(overviews, overview)
	}

	c.SendJSON(w, &overviews, http.StatusOK)
}

// GetInstrumentsHandler returns the instrument catalog with score fields and
// severity bands.
func (c *AssessmentController) GetInstrumentsHandler(w http.ResponseWriter, r *http.Request) {
	catalog := InstrumentCatalog()
	c.SendJSON(w, &catalog, http.StatusOK)
}

// GetScoresHandler returns the trajectory set for the requested selection.
func (c *AssessmentController) GetScoresHandler(w http.ResponseWriter, r *http.Request) {

	selection, field, ok := c.parseSelection(r)
	if !ok {
		set := TrajectorySet{Instrument: selection.InstrumentCode, FieldName: selection.FieldName, Clients: []ClientTrajectory{}}
		c.SendJSON(w, &set, http.StatusOK)
		return
	}

	entries, err := c.FetchScores(selection)
	if c.HandleError(err, w) {
		return
	}

	set := BuildTrajectories(field, entries)
	set.Instrument = selection.InstrumentCode
	c.SendJSON(w, &set, http.StatusOK)
}

// parseSelection reads the selection query parameters. ok is false when the
// instrument or field is not part of the catalog.
func (c *AssessmentController) parseSelection(r *http.Request) (Selection, ScoreField, bool) {
	values := r.URL.Query()

	selection := Selection{
		InstrumentCode: values.Get("instrument"),
		FieldName:      values.Get("field"),
	}
	if selection.FieldName == "" {
		selection.FieldName = "total_score"
	}
	if therapistId, err := strconv.Atoi(values.Get("therapist_id")); err == nil && therapistId > 0 {
		selection.TherapistId = uint(therapistId)
	}

	def, ok := FindInstrument(selection.InstrumentCode)
	if !ok {
		return selection, ScoreField{}, false
	}
	field, ok := def.Field(selection.FieldName)
	if !ok {
		return selection, ScoreField{}, false
	}
	return selection, field, true
}

// therapistName resolves a therapist id for chart and report titles.
func (c *AssessmentController) therapistName(selection Selection) string {
	if selection.TherapistId == 0 {
		return "All Therapists"
	}
	therapist := Therapist{}
	c.ormDB.First(&therapist, selection.TherapistId)
	if therapist.ID == 0 {
		return "All Therapists"
	}
	return therapist.Name
}
