package get_availability

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	getAvailability "event-slot-service/internal/usecase/get_availability"
	"event-slot-service/pkg/types"
)

// parseQuery разбирает query-параметры в запрос use case:
//
//	deviceId — сузить выдачу до одного устройства
//	date     — сузить выдачу до одной даты (YYYY-MM-DD)
//	selected — уже выбранные в заявке ячейки, повторяемый параметр
//	           в формате "deviceId,date,slot" (например "1,2026-09-10,10:00")
func parseQuery(eventID int64, query url.Values) (*getAvailability.Request, error) {
	req := &getAvailability.Request{EventID: eventID}

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

	for _, raw := range query["selected"] {
		parts := strings.Split(raw, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid selected %q, expected deviceId,date,slot", raw)
		}

		deviceID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid selected device %q", parts[0])
		}
		date, err := types.NewDateStringFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid selected date %q", parts[1])
		}
		slot, err := types.NewTimeStringFromString(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid selected slot %q", parts[2])
		}

		req.Selected = append(req.Selected, getAvailability.SelectedSlot{
			DeviceID: deviceID,
			Date:     date,
			SlotTime: slot,
		})
	}

	return req, nil
}
