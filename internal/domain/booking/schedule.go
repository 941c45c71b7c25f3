package booking

import (
	"regexp"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var clockPattern = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)

func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if date == "" {
		return time.Time{}, httperr.ErrValidation("date", "missing_date")
	}
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("date", "invalid_date")
	}
	return d, nil
}

// ParseClock anchors an HH:mm value on day. Values past 23:59 are rejected.
func ParseClock(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("time", "invalid_time")
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	), nil
}

// ExtractClock pulls the first HH:mm out of a legacy display string such as
// "Mon, 19 Oct 2026 at 10:00".
func ExtractClock(display string) (string, bool) {
	m := clockPattern.FindStringSubmatch(display)
	if m == nil {
		return "", false
	}
	hm := m[0]
	if len(m[1]) == 1 {
		hm = "0" + hm
	}
	return hm, true
}

func DisplayTime(day time.Time, hm string) string {
	return day.Format("Mon, 02 Jan 2006") + " at " + hm
}

// ShiftIntervals keeps available, well-formed shifts.
func ShiftIntervals(day time.Time, shifts []models.Shift) []Interval {
	var out []Interval
	for _, s := range shifts {
		if !s.Available {
			continue
		}
		start, err := ParseClock(day, s.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(day, s.EndTime)
		if err != nil || !end.After(start) {
			continue
		}
		out = append(out, Interval{Start: start, End: end})
	}
	return out
}

func BreakIntervals(day time.Time, breaks []models.Break) []Interval {
	var out []Interval
	for _, b := range breaks {
		if b.DurationMinutes <= 0 {
			continue
		}
		start, err := ParseClock(day, b.StartTime)
		if err != nil {
			continue
		}
		out = append(out, Interval{
			Start: start,
			End:   start.Add(time.Duration(b.DurationMinutes) * time.Minute),
		})
	}
	return out
}

// OccupiedMinutes resolves how long an appointment holds its staff member:
// bundle rows first, then the service catalog, then the stored duration.
func OccupiedMinutes(ap models.Appointment, catalog map[uint]models.Service, fallback int) int {
	if len(ap.Services) > 0 {
		total := 0
		for _, link := range ap.Services {
			total += link.DurationMinutes + link.PaddingMinutes
		}
		if total > 0 {
			return total
		}
	}
	if svc, ok := catalog[ap.ServiceID]; ok && svc.OccupiedMinutes() > 0 {
		return svc.OccupiedMinutes()
	}
	if ap.DurationMinutes > 0 {
		return ap.DurationMinutes
	}
	return fallback
}

// AppointmentInterval is the single place appointment times are turned into
// an interval. Intervals never cross midnight.
func AppointmentInterval(
	day time.Time,
	ap models.Appointment,
	catalog map[uint]models.Service,
	fallbackMinutes int,
) (Interval, error) {

	hm := ap.StartTime
	if hm == "" {
		extracted, ok := ExtractClock(ap.DisplayTime)
		if !ok {
			return Interval{}, httperr.ErrValidation("start_time", "unparseable_start_time")
		}
		hm = extracted
	}

	start, err := ParseClock(day, hm)
	if err != nil {
		return Interval{}, err
	}

	minutes := OccupiedMinutes(ap, catalog, fallbackMinutes)
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
	}, nil
}
