package notifier

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// BuildCalendar собирает ICS вложение для подтверждения заявки:
// по одному VEVENT на каждый забронированный слот
func BuildCalendar(msg *ConfirmationMessage) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//event-slot-service//RU")

	for i, line := range msg.Bookings {
		start, err := slotStart(line)
		if err != nil {
			return "", fmt.Errorf("%w: booking %d: %v", ErrBuildCalendar, i, err)
		}
		end := start.Add(time.Duration(msg.SlotDurationMinutes) * time.Minute)

		uid := fmt.Sprintf("%s-%d@event-slot-service", msg.ConfirmationCode, i)
		event := cal.AddEvent(uid)
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s: %s", msg.EventTitle, line.DeviceName))
		event.SetDescription(fmt.Sprintf("Код подтверждения: %s", msg.ConfirmationCode))
	}

	return cal.Serialize(), nil
}

// slotStart переводит пару (дата, слот) в момент времени
func slotStart(line BookingLine) (time.Time, error) {
	day, err := line.Date.Time()
	if err != nil {
		return time.Time{}, err
	}

	minutes, err := line.SlotTime.MinutesFromMidnight()
	if err != nil {
		return time.Time{}, err
	}

	return day.Add(time.Duration(minutes) * time.Minute), nil
}
