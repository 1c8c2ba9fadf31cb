package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// dateLayout формат календарной даты ISO-8601
const dateLayout = "2006-01-02"

var (
	// ErrInvalidDateString возвращается при некорректном формате даты
	ErrInvalidDateString = errors.New("types: invalid date string format, expected YYYY-MM-DD")
)

// DateString календарная дата в виде строки "YYYY-MM-DD".
// Как и TimeString, это wall-clock значение без таймзоны.
type DateString string

// NewDateString создает DateString из time.Time
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// NewDateStringFromString парсит строку "YYYY-MM-DD" в DateString
func NewDateStringFromString(s string) (DateString, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	return DateString(t.Format(dateLayout)), nil
}

// String возвращает строковое представление "YYYY-MM-DD"
func (d DateString) String() string {
	return string(d)
}

// IsZero проверяет, что значение не задано
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate проверяет формат значения
func (d DateString) Validate() error {
	if _, err := time.Parse(dateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return nil
}

// Time возвращает дату как time.Time (полночь, без таймзоны)
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return t, nil
}

// IsBefore проверяет, что d строго раньше other (лексикографически == хронологически для ISO дат)
func (d DateString) IsBefore(other DateString) bool {
	return string(d) < string(other)
}

// Value реализует driver.Valuer для сохранения в БД (колонка DATE)
func (d DateString) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	t, err := d.Time()
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Scan реализует sql.Scanner для чтения из БД
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = NewDateString(v)
		return nil
	case string:
		parsed, err := NewDateStringFromString(trimDate(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := NewDateStringFromString(trimDate(string(v)))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidDateString, src)
	}
}

// trimDate отбрасывает компонент времени из значения DATE ("2026-02-03T00:00:00Z" -> "2026-02-03")
func trimDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
