// Package jobs фоновые задачи сервиса
package jobs

import (
	"context"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"event-slot-service/internal/domain"
	"event-slot-service/internal/integrations/notifier"
	"event-slot-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDate(ctx context.Context, date types.DateString) ([]*domain.Booking, error)
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// DeviceRepository интерфейс репозитория устройств
type DeviceRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Device, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	SendOrganizerDigest(ctx context.Context, msg *notifier.DigestMessage) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Digest ежедневная сводка организатору: все бронирования на завтра,
// сгруппированные по событиям
type Digest struct {
	bookingRepo BookingRepository
	eventRepo   EventRepository
	deviceRepo  DeviceRepository
	notifier    NotifierClient
	logger      Logger
	cron        *cron.Cron
}

// NewDigest создает задачу сводки
func NewDigest(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	deviceRepo DeviceRepository,
	notifierClient NotifierClient,
	logger Logger,
) *Digest {
	return &Digest{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		deviceRepo:  deviceRepo,
		notifier:    notifierClient,
		logger:      logger,
	}
}

// Start регистрирует задачу по cron-расписанию и запускает планировщик
func (d *Digest) Start(spec string) error {
	d.cron = cron.New()

	if _, err := d.cron.AddFunc(spec, d.run); err != nil {
		return err
	}

	d.cron.Start()
	d.logger.Info("Digest: scheduled with spec %q", spec)
	return nil
}

// Stop останавливает планировщик и дожидается текущего запуска
func (d *Digest) Stop() {
	if d.cron != nil {
		<-d.cron.Stop().Done()
	}
}

func (d *Digest) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tomorrow := types.NewDateString(time.Now().AddDate(0, 0, 1))

	if err := d.Send(ctx, tomorrow); err != nil {
		d.logger.Error("Digest: failed for %s: %v", tomorrow, err)
	}
}

// Send собирает и отправляет сводку по бронированиям на дату
func (d *Digest) Send(ctx context.Context, date types.DateString) error {
	bookings, err := d.bookingRepo.GetByDate(ctx, date)
	if err != nil {
		return err
	}

	if len(bookings) == 0 {
		d.logger.Info("Digest: no bookings for %s, skipping", date)
		return nil
	}

	deviceNames, err := d.deviceNames(ctx, bookings)
	if err != nil {
		return err
	}

	// Группируем по событиям
	byEvent := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		byEvent[b.EventID] = append(byEvent[b.EventID], b)
	}

	eventIDs := make([]int64, 0, len(byEvent))
	for id := range byEvent {
		eventIDs = append(eventIDs, id)
	}
	sort.Slice(eventIDs, func(i, j int) bool { return eventIDs[i] < eventIDs[j] })

	msg := &notifier.DigestMessage{
		Date:     date,
		Total:    len(bookings),
		Sections: make([]notifier.DigestSection, 0, len(eventIDs)),
	}

	for _, eventID := range eventIDs {
		event, err := d.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			d.logger.Warn("Digest: failed to get event id=%d: %v", eventID, err)
			continue
		}

		section := notifier.DigestSection{
			EventID:    eventID,
			EventTitle: event.Title,
		}
		for _, b := range byEvent[eventID] {
			section.Bookings = append(section.Bookings, notifier.BookingLine{
				DeviceID:   b.DeviceID,
				DeviceName: deviceNames[b.DeviceID],
				Date:       b.Date,
				SlotTime:   b.SlotTime,
			})
		}

		msg.Sections = append(msg.Sections, section)
	}

	if err := d.notifier.SendOrganizerDigest(ctx, msg); err != nil {
		return err
	}

	d.logger.Info("Digest: sent %d bookings in %d sections for %s", msg.Total, len(msg.Sections), date)
	return nil
}

func (d *Digest) deviceNames(ctx context.Context, bookings []*domain.Booking) (map[int64]string, error) {
	seen := make(map[int64]struct{}, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.DeviceID]; ok {
			continue
		}
		seen[b.DeviceID] = struct{}{}
		ids = append(ids, b.DeviceID)
	}

	devices, err := d.deviceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(devices))
	for _, dev := range devices {
		names[dev.ID] = dev.Name
	}
	return names, nil
}
