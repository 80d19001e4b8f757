package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crixfer/DIID-GS/internal/models"
	"github.com/crixfer/DIID-GS/internal/service"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type fakeStudentLister struct {
	students []models.EnrolledStudent
	err      error
}

func (f *fakeStudentLister) ListByQuarter(context.Context, string) ([]models.EnrolledStudent, error) {
	return f.students, f.err
}

type fakeGradeLister struct{ err error }

func (f *fakeGradeLister) ListByQuarter(context.Context, string) ([]models.StudentGrade, error) {
	return nil, f.err
}

type fakeAttendanceLister struct{}

func (f *fakeAttendanceLister) ListByQuarter(context.Context, string) ([]models.AttendanceRecord, error) {
	return nil, nil
}

type fakeNoteLister struct{}

func (f *fakeNoteLister) ListByQuarter(context.Context, string) ([]models.CalendarNote, error) {
	return nil, nil
}

func newScopeHandler(students *fakeStudentLister, grades *fakeGradeLister) *ScopeHandler {
	svc := service.NewScopeService(students, grades, &fakeAttendanceLister{}, &fakeNoteLister{},
		nil, nil, service.ScopeServiceConfig{}, nil)
	return NewScopeHandler(svc)
}

func TestScopeHandlerSelectLoadsQuarter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newScopeHandler(&fakeStudentLister{
		students: []models.EnrolledStudent{{Student: models.Student{ID: "s1"}, QuarterID: "q1"}},
	}, &fakeGradeLister{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/scope", strings.NewReader(`{"quarter_id":"q1"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Select(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "q1", envelope.Data["quarter_id"])
	assert.Nil(t, envelope.Meta["partial"])
}

func TestScopeHandlerSelectReportsPartialLoad(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newScopeHandler(&fakeStudentLister{}, &fakeGradeLister{err: assert.AnError})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/scope", strings.NewReader(`{"quarter_id":"q1"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Select(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["partial"])
}

func TestScopeHandlerSelectEmptyClearsScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newScopeHandler(&fakeStudentLister{}, &fakeGradeLister{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/scope", strings.NewReader(`{"quarter_id":""}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Select(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "", envelope.Data["quarter_id"])
}

func TestScopeHandlerSelectRejectsBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newScopeHandler(&fakeStudentLister{}, &fakeGradeLister{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/scope", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Select(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
