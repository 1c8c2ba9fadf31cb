package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func confirmation() *ConfirmationMessage {
	return &ConfirmationMessage{
		EventTitle:          "Демо-день",
		Name:                "Иван Иванов",
		Email:               "ivan@example.com",
		Phone:               "+79990001122",
		ConfirmationCode:    "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		SlotDurationMinutes: 30,
		Bookings: []BookingLine{
			{DeviceID: 1, DeviceName: "Стенд A", Date: "2026-09-10", SlotTime: "10:00"},
			{DeviceID: 2, DeviceName: "Стенд B", Date: "2026-09-10", SlotTime: "11:30"},
		},
	}
}

func TestClient_SendConfirmation(t *testing.T) {
	var received ConfirmationMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications/confirmation", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, noopLogger{})

	err := client.SendConfirmation(context.Background(), confirmation())

	require.NoError(t, err)
	assert.Equal(t, "Демо-день", received.EventTitle)
	assert.Len(t, received.Bookings, 2)
	// ICS вложение собрано и приложено
	assert.Contains(t, received.Calendar, "BEGIN:VCALENDAR")
	assert.Contains(t, received.Calendar, "Демо-день: Стенд A")
}

func TestClient_SendConfirmation_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, noopLogger{})

	err := client.SendConfirmation(context.Background(), confirmation())

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestBuildCalendar(t *testing.T) {
	calendar, err := BuildCalendar(confirmation())

	require.NoError(t, err)
	// по одному VEVENT на каждый слот заявки
	assert.Equal(t, 2, strings.Count(calendar, "BEGIN:VEVENT"))
	assert.Contains(t, calendar, "DTSTART:20260910T100000Z")
	assert.Contains(t, calendar, "DTEND:20260910T103000Z")
	assert.Contains(t, calendar, "DTSTART:20260910T113000Z")
}

func TestBuildCalendar_InvalidSlot(t *testing.T) {
	msg := confirmation()
	msg.Bookings[0].SlotTime = "25:99"

	_, err := BuildCalendar(msg)

	assert.ErrorIs(t, err, ErrBuildCalendar)
}
