package services

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"shopfloor/internal/pkg/errs"
)

// Window is a daily working interval in local wall-clock time, [Start, End).
type Window struct {
	StartHour, StartMinute int
	EndHour, EndMinute     int
}

func (w Window) start() int { return w.StartHour*60 + w.StartMinute }
func (w Window) end() int   { return w.EndHour*60 + w.EndMinute }

func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.StartHour, w.StartMinute, w.EndHour, w.EndMinute)
}

// DefaultWindows are 07:00-12:00 and 13:00-17:00.
func DefaultWindows() []Window {
	return []Window{
		{StartHour: 7, EndHour: 12},
		{StartHour: 13, EndHour: 17},
	}
}

// ParseWindows parses a comma separated list such as "07:00-12:00,13:00-17:00".
func ParseWindows(s string) ([]Window, error) {
	var out []Window
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to, ok := strings.Cut(part, "-")
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("work window is invalid", fmt.Errorf("%q has no '-'", part))
		}
		sh, sm, err := parseClock(from)
		if err != nil {
			return nil, err
		}
		eh, em, err := parseClock(to)
		if err != nil {
			return nil, err
		}
		out = append(out, Window{StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em})
	}
	if len(out) == 0 {
		return nil, errs.NewValueIsRequiredError("work windows")
	}
	return out, nil
}

func parseClock(s string) (int, int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	hour, herr := strconv.Atoi(h)
	minute, merr := strconv.Atoi(m)
	if !ok || herr != nil || merr != nil || hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, 0, errs.NewValueIsInvalidErrorWithCause("clock time is invalid", fmt.Errorf("%q is not HH:MM", s))
	}
	return hour, minute, nil
}

// BusinessHoursAccountant measures elapsed time that falls inside the daily
// work windows of one time zone. Windows are rebuilt for every calendar day
// from wall-clock components, so days shortened or lengthened by DST are
// measured correctly.
type BusinessHoursAccountant struct {
	loc     *time.Location
	windows []Window
}

// NewBusinessHoursAccountant validates that windows are non-empty, ordered
// and non-overlapping.
func NewBusinessHoursAccountant(loc *time.Location, windows []Window) (*BusinessHoursAccountant, error) {
	if loc == nil {
		return nil, errs.NewValueIsRequiredError("location")
	}
	if len(windows) == 0 {
		return nil, errs.NewValueIsRequiredError("work windows")
	}

	sorted := slices.Clone(windows)
	slices.SortFunc(sorted, func(a, b Window) int { return a.start() - b.start() })

	var errList []error
	for i, w := range sorted {
		if w.start() >= w.end() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("work window is invalid", fmt.Errorf("%s ends before it starts", w)))
		}
		if i > 0 && sorted[i-1].end() > w.start() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("work window is invalid", fmt.Errorf("%s overlaps %s", w, sorted[i-1])))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &BusinessHoursAccountant{loc: loc, windows: sorted}, nil
}

func (a *BusinessHoursAccountant) Location() *time.Location {
	return a.loc
}

func (a *BusinessHoursAccountant) Windows() []Window {
	return slices.Clone(a.windows)
}

// Active returns the part of [start, end) that falls inside work windows.
// It is zero when end is not after start.
func (a *BusinessHoursAccountant) Active(start, end time.Time) time.Duration {
	if !end.After(start) {
		return 0
	}

	s := start.In(a.loc)
	y, m, d := s.Date()

	var total time.Duration
	for day := 0; ; day++ {
		dayStart := time.Date(y, m, d+day, 0, 0, 0, 0, a.loc)
		if !dayStart.Before(end) && day > 0 {
			break
		}
		for _, w := range a.windows {
			ws, we := a.bounds(y, m, d+day, w)
			lo := maxTime(ws, start)
			hi := minTime(we, end)
			if hi.After(lo) {
				total += hi.Sub(lo)
			}
		}
	}
	return total
}

// Contains reports whether t falls inside a work window.
func (a *BusinessHoursAccountant) Contains(t time.Time) bool {
	local := t.In(a.loc)
	y, m, d := local.Date()
	for _, w := range a.windows {
		ws, we := a.bounds(y, m, d, w)
		if !t.Before(ws) && t.Before(we) {
			return true
		}
	}
	return false
}

func (a *BusinessHoursAccountant) bounds(y int, m time.Month, d int, w Window) (time.Time, time.Time) {
	return time.Date(y, m, d, w.StartHour, w.StartMinute, 0, 0, a.loc),
		time.Date(y, m, d, w.EndHour, w.EndMinute, 0, 0, a.loc)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
