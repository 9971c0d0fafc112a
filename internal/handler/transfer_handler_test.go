package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"studentresults/internal/service"
)

func TestImportCSV(t *testing.T) {
	router, svc := setupRouter()

	csvContent := "Name,Math,Science,English\nAlice,90,80,70\nBob,60,100,100\nCarl,x,1,1\n"

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "marks.csv")
	require.NoError(t, err)
	part.Write([]byte(csvContent))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/students/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result service.ImportResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.Equal(t, "marks.csv", result.FileName)
	assert.Equal(t, 3, result.TotalRecords)
	assert.Equal(t, 2, result.Added)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 4, result.Rejected[0].Line)

	roster, err := svc.Roster()
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}

func TestImportCSVPartialFailure(t *testing.T) {
	partial := &service.ImportResult{FileName: "marks.csv", TotalRecords: 2, Added: 1, Rejected: []service.RowError{}}
	mockService := new(MockService)
	mockService.On("ImportCSV", "marks.csv", mock.Anything).Return(partial, errors.New("line 3: db down"))

	handler := NewTransferHandler(mockService, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "marks.csv")
	require.NoError(t, err)
	part.Write([]byte("Name,Math,Science,English\nAlice,90,80,70\nBob,60,100,100\n"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/students/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	handler.ImportCSV(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var response struct {
		Error  string               `json:"error"`
		Import service.ImportResult `json:"import"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "import failed", response.Error)
	assert.Equal(t, 1, response.Import.Added)
	assert.Equal(t, 2, response.Import.TotalRecords)
	assert.NotContains(t, rr.Body.String(), "db down")
	mockService.AssertExpectations(t)
}

func TestImportCSVNoFile(t *testing.T) {
	router, _ := setupRouter()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/students/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "No file uploaded")
}

func TestImportCSVNotMultipart(t *testing.T) {
	router, _ := setupRouter()

	req := httptest.NewRequest("POST", "/students/import", bytes.NewBufferString("Name,Math\n"))
	req.Header.Set("Content-Type", "text/csv")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestExportCSV(t *testing.T) {
	router, svc := setupRouter()
	require.NoError(t, svc.Add("Alice", "90", "80", "70"))

	req := httptest.NewRequest("GET", "/students/export", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "students.csv")
	assert.Equal(t, "Name,Math,Science,English,Total,Average,Grade\nAlice,90,80,70,240,80.00,B\n", rr.Body.String())
}
