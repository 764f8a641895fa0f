package assessmentbundle

import (
	"github.com/jinzhu/gorm"

	"therapist_dashboard/app/core"
)

type AssessmentBundle struct {
	controller *AssessmentController
}

func NewAssessmentBundle(ormDB *gorm.DB) *AssessmentBundle {
	bundle := AssessmentBundle{
		controller: NewAssessmentController(ormDB),
	}
	return &bundle
}

func (b *AssessmentBundle) GetRoutes() []core.Route {
	return []core.Route{
		{
			Method:  "GET",
			Path:    "/assessments/therapists",
			Handler: b.controller.GetTherapistsHandler,
		},
		{
			Method:  "GET",
			Path:    "/assessments/instruments",
			Handler: b.controller.GetInstrumentsHandler,
		},
		{
			Method:  "GET",
			Path:    "/assessments/scores",
			Handler: b.controller.GetScoresHandler,
		},
		{
			Method:  "GET",
			Path:    "/assessments/chart.png",
			Handler: b.controller.GetChartPNGHandler,
		},
		{
			Method:  "GET",
			Path:    "/assessments/report.pdf",
			Handler: b.controller.GetReportPDFHandler,
		},
		{
			Method:  "OPTIONS",
			Path:    "/assessments/{rest:.*}",
			Handler: b.controller.OptionsHandler,
		},
	}
}
