// Package schedule defines the static universe of bookable slots: the fixed
// hourly time enumeration and the fixed court set that every calendar day
// shares. A (date, startTime, courtId) triple is the unit of contention for
// both bookings and closures.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Operating hours run 06:00 through 22:00, last slot ending 23:00.
var TimeSlots = []string{
	"06:00", "07:00", "08:00", "09:00", "10:00", "11:00",
	"12:00", "13:00", "14:00", "15:00", "16:00", "17:00",
	"18:00", "19:00", "20:00", "21:00", "22:00",
}

const (
	Court1 = "Court 1"
	Court2 = "Court 2"

	// CourtBoth is a request-level sentinel expanded to both concrete
	// courts before anything touches a ledger; it is never persisted.
	CourtBoth = "Both"
)

var Courts = []string{Court1, Court2}

var (
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime   = errors.New("invalid time slot, operating hours are 06:00 to 23:00")
	ErrInvalidCourt  = errors.New(`court must be "Court 1", "Court 2" or "Both"`)
	ErrInvalidRange  = errors.New("end time must be after start time")
	ErrInvalidMobile = errors.New("mobile number must be 10 digits")
)

var (
	dateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	mobileRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// Slot is the identity of one court-hour on one day.
type Slot struct {
	Date      string
	StartTime string
	CourtID   string
}

func (s Slot) EndTime() string {
	return EndTime(s.StartTime)
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s %s", s.Date, s.StartTime, s.CourtID)
}

// HourRange is one hourly (start, end) pair produced by expanding a
// multi-hour request.
type HourRange struct {
	Start string
	End   string
}

func ValidateDate(date string) error {
	if !dateRe.MatchString(date) {
		return ErrInvalidDate
	}
	return nil
}

func ValidateTime(t string) error {
	for _, slot := range TimeSlots {
		if slot == t {
			return nil
		}
	}
	return ErrInvalidTime
}

func ValidateCourt(courtID string) error {
	if courtID == Court1 || courtID == Court2 || courtID == CourtBoth {
		return nil
	}
	return ErrInvalidCourt
}

func ValidateMobile(mobile string) error {
	if !mobileRe.MatchString(mobile) {
		return ErrInvalidMobile
	}
	return nil
}

// ExpandCourts resolves the "Both" sentinel into concrete court ids.
func ExpandCourts(courtID string) ([]string, error) {
	switch courtID {
	case CourtBoth:
		return []string{Court1, Court2}, nil
	case Court1, Court2:
		return []string{courtID}, nil
	default:
		return nil, ErrInvalidCourt
	}
}

// Duration returns the whole-hour span between two enumerated times.
func Duration(startTime, endTime string) (int, error) {
	startHour, err := hourOf(startTime)
	if err != nil {
		return 0, err
	}
	endHour, err := hourOf(endTime)
	if err != nil {
		return 0, err
	}
	if endHour <= startHour {
		return 0, ErrInvalidRange
	}
	return endHour - startHour, nil
}

// SlotsForDuration expands a start time and duration into consecutive hourly
// ranges. A range crossing the last enumerated hour is invalid.
func SlotsForDuration(startTime string, hours int) ([]HourRange, error) {
	if err := ValidateTime(startTime); err != nil {
		return nil, err
	}
	if hours < 1 {
		return nil, ErrInvalidRange
	}

	startHour, err := hourOf(startTime)
	if err != nil {
		return nil, err
	}

	lastHour, _ := hourOf(TimeSlots[len(TimeSlots)-1])
	if startHour+hours-1 > lastHour {
		return nil, ErrInvalidTime
	}

	ranges := make([]HourRange, 0, hours)
	for i := 0; i < hours; i++ {
		hour := startHour + i
		ranges = append(ranges, HourRange{
			Start: formatHour(hour),
			End:   formatHour(hour + 1),
		})
	}
	return ranges, nil
}

// EnumerateSlots returns every slot identity for a date, time-major then
// court, matching the order the availability grid is rendered in.
func EnumerateSlots(date string) []Slot {
	slots := make([]Slot, 0, len(TimeSlots)*len(Courts))
	for _, t := range TimeSlots {
		for _, c := range Courts {
			slots = append(slots, Slot{Date: date, StartTime: t, CourtID: c})
		}
	}
	return slots
}

// EndTime returns the end of an hourly slot, one hour after its start.
func EndTime(startTime string) string {
	hour, err := hourOf(startTime)
	if err != nil {
		return ""
	}
	return formatHour(hour + 1)
}

func hourOf(t string) (int, error) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidTime
	}
	return hour, nil
}

func formatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
