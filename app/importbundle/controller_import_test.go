package importbundle

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"therapist_dashboard/app/core"
)

func newWorkbookRequest(t *testing.T, path string) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "scoring.xlsx")
	require.NoError(t, err)
	source, err := os.Open(path)
	require.NoError(t, err)
	defer source.Close()
	_, err = io.Copy(part, source)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	r := httptest.NewRequest("POST", "/import/workbook", body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	return r
}

func TestPostWorkbookHandler(t *testing.T) {
	ormDB := newTestDB(t)
	core.Config.Server.TmpPath = t.TempDir()

	controller := NewImportController(ormDB)

	w := httptest.NewRecorder()
	controller.PostWorkbookHandler(w, newWorkbookRequest(t, writeWorkbook(t)))

	require.Equal(t, http.StatusOK, w.Code)

	response := core.ResponseData{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 1, response.Status)

	raw, err := json.Marshal(response.Data)
	require.NoError(t, err)
	summary := ImportSummary{}
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, 2, summary.ClientsImported)
	assert.Equal(t, 7, summary.Imported)

	runs := []ImportRun{}
	ormDB.Find(&runs)
	assert.Len(t, runs, 1)
}

func TestPostWorkbookHandlerWithoutFile(t *testing.T) {
	ormDB := newTestDB(t)
	controller := NewImportController(ormDB)

	r := httptest.NewRequest("POST", "/import/workbook", nil)
	w := httptest.NewRecorder()
	controller.PostWorkbookHandler(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetImportRunsHandler(t *testing.T) {
	ormDB := newTestDB(t)
	controller := NewImportController(ormDB)

	_, err := NewImporter(ormDB).ImportWorkbook(writeWorkbook(t))
	require.NoError(t, err)
	_, err = NewImporter(ormDB).ImportWorkbook(writeWorkbook(t))
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/import/runs", nil)
	w := httptest.NewRecorder()
	controller.GetImportRunsHandler(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	response := core.ResponseData{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	raw, err := json.Marshal(response.Data)
	require.NoError(t, err)
	runs := []ImportRun{}
	require.NoError(t, json.Unmarshal(raw, &runs))

	require.Len(t, runs, 2)
	assert.True(t, runs[0].ID > runs[1].ID)
}

func TestGetHealthHandler(t *testing.T) {
	ormDB := newTestDB(t)
	controller := NewImportController(ormDB)

	r := httptest.NewRequest("GET", "/system/health", nil)
	w := httptest.NewRecorder()
	controller.GetHealthHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
