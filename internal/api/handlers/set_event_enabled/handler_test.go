package set_event_enabled

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	eventsService "event-slot-service/internal/service/events"
)

type mockService struct {
	gotID      int64
	gotEnabled bool
	err        error
}

func (m *mockService) SetEnabled(_ context.Context, id int64, enabled bool) error {
	m.gotID = id
	m.gotEnabled = enabled
	return m.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func doRequest(svc *mockService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	handler := NewHandler(svc, noopLogger{})
	router.HandleFunc("/api/v1/events/{eventId}/enabled", handler.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/events/7/enabled", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_DisablesEvent(t *testing.T) {
	svc := &mockService{}

	rec := doRequest(svc, `{"enabled": false}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(7), svc.gotID)
	assert.False(t, svc.gotEnabled)
}

func TestHandle_EventNotFound(t *testing.T) {
	svc := &mockService{err: eventsService.ErrEventNotFound}

	rec := doRequest(svc, `{"enabled": true}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_MissingEnabledField(t *testing.T) {
	svc := &mockService{}

	rec := doRequest(svc, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
