package assessmentbundle

import (
	"bytes"
	"fmt"
	"image/png"
	"log"
	"net/http"

	"github.com/jung-kurt/gofpdf"
)

// GetReportPDFHandler builds a printable report for the requested selection:
// the trajectory chart followed by a table of every score behind it.
func (c *AssessmentController) GetReportPDFHandler(w http.ResponseWriter, r *http.Request) {

	selection, field, ok := c.parseSelection(r)
	if !ok {
		c.HandleErrorWithStatus(fmt.Errorf("unknown instrument or field"), w, http.StatusBadRequest)
		return
	}

	entries, err := c.FetchScores(selection)
	if c.HandleError(err, w) {
		return
	}
	set := BuildTrajectories(field, entries)
	set.Instrument = selection.InstrumentCode

	title := fmt.Sprintf("%s Trajectories - %s", field.Label, c.therapistName(selection))
	img := RenderTrajectoryChart(set, field, title)

	chartBuffer := &bytes.Buffer{}
	if err := png.Encode(chartBuffer, img); err != nil {
		c.HandleError(err, w)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Text(10, 15, title)
	pdf.SetFont("Arial", "", 10)
	pdf.Text(10, 21, fmt.Sprintf("Instrument: %s / %s", selection.InstrumentCode, field.Name))

	imageOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("trajectory-chart", imageOptions, chartBuffer)
	pdf.ImageOptions("trajectory-chart", 10, 28, 190, 0, false, imageOptions, 0, "")

	pdf.SetY(155)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 7, "Client", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, "Therapist", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Session", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Score", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Severity", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, client := range set.Clients {
		for _, entry := range client.Entries {
			recordedAt := ""
			if entry.RecordedAt.Valid {
				recordedAt = entry.RecordedAt.Time.Format("2006-01-02")
			}
			pdf.CellFormat(40, 6, client.ClientCode, "1", 0, "L", false, 0, "")
			pdf.CellFormat(45, 6, client.Therapist, "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%d", entry.SessionNumber), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, recordedAt, "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%g", entry.Value), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, entry.Severity, "1", 1, "L", false, 0, "")
		}
	}
	if len(set.Clients) == 0 {
		pdf.CellFormat(190, 6, "No scores recorded for this selection", "1", 1, "L", false, 0, "")
	}

	w.Header().Add("Content-Type", "application/pdf")
	w.Header().Add("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%s_report.pdf"`, selection.InstrumentCode, field.Name))
	w.Header().Add("Access-Control-Allow-Origin", "*")
	if err := pdf.Output(w); err != nil {
		log.Println(err)
	}
}
