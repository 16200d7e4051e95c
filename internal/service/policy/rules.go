package policy

import (
	"fmt"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/pkg/types"
)

const day = 24 * time.Hour

// Rules параметры политики бронирования
type Rules struct {
	NoticeDays           map[domain.EventType]int // минимум полных дней между подачей и началом
	WeekdayEarliestStart types.TimeString         // самое раннее начало в будни
	WeekendEarliestStart types.TimeString         // самое раннее начало в субботу и воскресенье
	Location             *time.Location           // часовой пояс, в котором считаются часы работы
}

// DefaultRules правила университета по умолчанию
func DefaultRules() Rules {
	return Rules{
		NoticeDays: map[domain.EventType]int{
			domain.EventTypeCoCurricular: domain.DefaultCoCurricularNoticeDays,
			domain.EventTypeOpenAll:      domain.DefaultOpenAllNoticeDays,
			domain.EventTypeClosedClub:   domain.DefaultClosedClubNoticeDays,
		},
		WeekdayEarliestStart: domain.DefaultWeekdayEarliestStart,
		WeekendEarliestStart: domain.DefaultWeekendEarliestStart,
		Location:             time.Local,
	}
}

// DaysUntil число дней до начала, округлённое вверх: ceil((start - now) / 1 day)
func DaysUntil(start, now time.Time) int {
	d := start.Sub(now)
	days := int(d / day)
	if d%day > 0 {
		days++
	}
	return days
}

// CheckAdvanceNotice проверяет минимальный срок подачи заявки для типа события
func (r Rules) CheckAdvanceNotice(eventType domain.EventType, start, now time.Time) error {
	required, ok := r.NoticeDays[eventType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}

	if days := DaysUntil(start, now); days < required {
		return &Violation{
			rule: ErrAdvanceNotice,
			Reason: fmt.Sprintf("%s events must be booked at least %d day(s) in advance, requested start is %d day(s) away",
				eventType, required, days),
		}
	}

	return nil
}

// CheckOperatingHours проверяет время начала по дню недели и что конец позже начала.
// Сравниваются времена суток, многодневные бронирования этим правилом не поддерживаются.
func (r Rules) CheckOperatingHours(start, end time.Time) error {
	if !end.After(start) {
		return &Violation{rule: ErrOperatingHours, Reason: "end time must be after start time"}
	}

	localStart, localEnd := r.InLocation(start), r.InLocation(end)
	startTime := types.NewTimeString(localStart)
	endTime := types.NewTimeString(localEnd)

	earliest, dayKind := r.EarliestStartOn(localStart), "weekdays"
	if isWeekend(localStart) {
		dayKind = "weekends"
	}

	if startTime.IsBefore(earliest) {
		return &Violation{
			rule:   ErrOperatingHours,
			Reason: fmt.Sprintf("on %s bookings may start no earlier than %s, requested %s", dayKind, earliest, startTime),
		}
	}

	// Сравниваются секунды, а не HH:MM
	if sinceMidnight(localEnd) <= sinceMidnight(localStart) {
		return &Violation{
			rule:   ErrOperatingHours,
			Reason: fmt.Sprintf("end time %s must be after start time %s on the same day", endTime, startTime),
		}
	}

	return nil
}

// CheckCapacity проверяет вместимость каждой площадки. Если у площадки не задана
// вместимость или не указано число участников, проверка для неё пропускается.
func (r Rules) CheckCapacity(venues []*domain.Venue, expectedAttendees *int) error {
	if expectedAttendees == nil {
		return nil
	}

	for _, venue := range venues {
		if !venue.HasCapacity() {
			continue
		}
		if *expectedAttendees > *venue.Capacity {
			return &Violation{
				rule:    ErrCapacity,
				VenueID: venue.ID,
				Reason: fmt.Sprintf("expected attendees (%d) exceed the capacity of %s (%d)",
					*expectedAttendees, venue.Name, *venue.Capacity),
			}
		}
	}

	return nil
}

// EarliestStartOn самое раннее допустимое начало в день t (по часовому поясу политики)
func (r Rules) EarliestStartOn(t time.Time) types.TimeString {
	if isWeekend(r.InLocation(t)) {
		return r.WeekendEarliestStart
	}
	return r.WeekdayEarliestStart
}

// InLocation переводит время в часовой пояс политики
func (r Rules) InLocation(t time.Time) time.Time {
	if r.Location == nil {
		return t
	}
	return t.In(r.Location)
}

func sinceMidnight(t time.Time) time.Duration {
	h, m, sec := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second + time.Duration(t.Nanosecond())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
