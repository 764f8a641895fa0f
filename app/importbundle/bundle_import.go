package importbundle

import (
	"github.com/jinzhu/gorm"

	"therapist_dashboard/app/core"
	web3socket "therapist_dashboard/app/websocket"
)

type ImportBundle struct {
	controller *ImportController
}

func NewImportBundle(ormDB *gorm.DB) *ImportBundle {
	bundle := ImportBundle{
		controller: NewImportController(ormDB),
	}
	return &bundle
}

func (b *ImportBundle) GetRoutes() []core.Route {
	return []core.Route{
		{
			Method:  "POST",
			Path:    "/import/workbook",
			Handler: b.controller.PostWorkbookHandler,
		},
		{
			Method:  "GET",
			Path:    "/import/runs",
			Handler: b.controller.GetImportRunsHandler,
		},
		{
			Method:  "GET",
			Path:    "/system/health",
			Handler: b.controller.GetHealthHandler,
		},
		{
			Method:  "GET",
			Path:    "/ws/dashboard",
			Handler: web3socket.HandleDashboardConnections,
		},
		{
			Method:  "OPTIONS",
			Path:    "/import/{rest:.*}",
			Handler: b.controller.OptionsHandler,
		},
	}
}
