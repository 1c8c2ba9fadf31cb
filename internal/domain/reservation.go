package domain

import "event-slot-service/pkg/types"

// SlotSelection один выбор посетителя: устройство + дата + слот
type SlotSelection struct {
	DeviceID int64
	Date     types.DateString
	SlotTime types.TimeString
}

// Contact контактные данные посетителя, общие для всей заявки
type Contact struct {
	Name  string
	Email string
	Phone string
	Note  *string
}

// Normalized возвращает копию с нормализованными email и телефоном
func (c Contact) Normalized() Contact {
	c.Email = NormalizeEmail(c.Email)
	c.Phone = NormalizePhone(c.Phone)
	return c
}

// Reservation незакоммиченная заявка посетителя: по одному выбору
// (дата+слот) на каждое выбранное устройство. Существует только в памяти
// до коммита; бросить её на любом этапе — без побочных эффектов.
type Reservation struct {
	EventID    int64
	Contact    Contact
	Selections []SlotSelection
}

// IsComplete проверяет стадию Collecting: заявка полна, когда есть хотя бы
// один выбор, каждый выбор несёт устройство, дату и слот, и ни одно
// устройство не встречается дважды.
func (r *Reservation) IsComplete() bool {
	if len(r.Selections) == 0 {
		return false
	}

	seen := make(map[int64]struct{}, len(r.Selections))
	for _, sel := range r.Selections {
		if sel.DeviceID <= 0 || sel.Date.IsZero() || sel.SlotTime.IsZero() {
			return false
		}
		if _, dup := seen[sel.DeviceID]; dup {
			return false
		}
		seen[sel.DeviceID] = struct{}{}
	}

	return true
}

// DistinctMoments возвращает уникальные пары (дата, слот) заявки —
// по ним выполняется проверка "один человек — один момент".
func (r *Reservation) DistinctMoments() []SlotSelection {
	seen := make(map[string]struct{}, len(r.Selections))
	moments := make([]SlotSelection, 0, len(r.Selections))

	for _, sel := range r.Selections {
		key := sel.Date.String() + "|" + sel.SlotTime.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		moments = append(moments, SlotSelection{Date: sel.Date, SlotTime: sel.SlotTime})
	}

	return moments
}
