package domain

// Ограничения валидации
const (
	MinSlotDurationMinutes = 1
	MaxSlotDurationMinutes = 480 // 8 часов

	MaxTitleLength = 200
	MaxNoteLength  = 500
	MaxNameLength  = 100

	// MaxSelectionsPerReservation предохранитель от заявок на все устройства сразу
	MaxSelectionsPerReservation = 20
)

// Стандартные длительности слотов, предлагаемые в форме создания события.
// Алгоритм генерации сетки принимает любую положительную длительность.
var StandardSlotDurations = []int{15, 30, 45, 60}

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
