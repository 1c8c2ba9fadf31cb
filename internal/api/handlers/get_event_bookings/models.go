package get_event_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"event-slot-service/internal/service/bookings/models"
	"event-slot-service/pkg/types"
)

// parseQuery разбирает фильтры дашборда: deviceId, date, slot
func parseQuery(eventID int64, query url.Values) (*models.GetEventBookingsRequest, error) {
	req := &models.GetEventBookingsRequest{EventID: eventID}

	if raw := query.Get("deviceId"); raw != "" {
		deviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid deviceId %q", raw)
		}
		req.DeviceID = &deviceID
	}

	if raw := query.Get("date"); raw != "" {
		date, err := types.NewDateStringFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", raw)
		}
		req.Date = &date
	}

	if raw := query.Get("slot"); raw != "" {
		slot, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid slot %q", raw)
		}
		req.SlotTime = &slot
	}

	return req, nil
}
