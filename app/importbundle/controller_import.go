package importbundle

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jinzhu/gorm"

	"therapist_dashboard/app/core"
	web3socket "therapist_dashboard/app/websocket"
)

type ImportController struct {
	core.Controller
	ormDB *gorm.DB
}

func NewImportController(ormDB *gorm.DB) *ImportController {
	c := ImportController{ormDB: ormDB}

	if core.Config.Database.DoAutoMigrate {
		c.ormDB.AutoMigrate(&ImportRun{})
	}

	go web3socket.HandleBroadcastMessages()

	return &c
}

// PostWorkbookHandler receives a scoring workbook upload, runs the import and
// pushes the result to connected dashboards.
func (c *ImportController) PostWorkbookHandler(w http.ResponseWriter, r *http.Request) {

	uploadFile, handler, err := r.FormFile("file")
	if c.HandleErrorWithStatus(err, w, http.StatusBadRequest) {
		return
	}
	defer uploadFile.Close()

	uploadPath := filepath.Join(c.GetTmpUploadPath(), core.RandomString(8)+"_"+filepath.Base(handler.Filename))
	target, err := os.Create(uploadPath)
	if c.HandleError(err, w) {
		return
	}
	_, err = io.Copy(target, uploadFile)
	target.Close()
	if c.HandleError(err, w) {
		return
	}
	defer os.Remove(uploadPath)

	summary, err := NewImporter(c.ormDB).ImportWorkbook(uploadPath)
	if c.HandleErrorWithStatus(err, w, http.StatusBadRequest) {
		return
	}
	log.Println(summary.String())

	web3socket.SendBroadcastWebsocketDataInfoMessage("workbook imported", web3socket.Websocket_Update, web3socket.Websocket_Scores, summary)

	c.sendSummaryMail(summary)

	c.SendJSON(w, &summary, http.StatusOK)
}

// sendSummaryMail mails the import result when a mail server is configured.
func (c *ImportController) sendSummaryMail(summary ImportSummary) {
	if core.Config.MailServer.SmtpHost == "" || len(core.Config.MailServer.SummaryTo) == 0 {
		return
	}
	subject := fmt.Sprintf("Workbook import: %s", summary.Source)
	if err := core.SendMail(core.Config.MailServer.SummaryFrom, core.Config.MailServer.SummaryTo, subject, summary.String(), nil); err != nil {
		log.Println(err)
	}
}

// GetImportRunsHandler returns the most recent import runs, newest first.
func (c *ImportController) GetImportRunsHandler(w http.ResponseWriter, r *http.Request) {
	runs := []ImportRun{}
	c.ormDB.Order("id desc").Limit(20).Find(&runs)
	c.SendJSON(w, &runs, http.StatusOK)
}

// GetHealthHandler reports whether the database connection is alive.
func (c *ImportController) GetHealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.ormDB.DB().Ping(); c.HandleErrorWithStatus(err, w, http.StatusServiceUnavailable) {
		return
	}
	c.SendJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
