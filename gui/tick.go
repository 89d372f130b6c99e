package gui

import (
	"strings"
	"time"
)

// TimeUnits is a set of calendar units.
type TimeUnits uint8

const (
	SecondUnit TimeUnits = 1 << iota
	MinuteUnit
	HourUnit
	DayUnit
	MonthUnit
	YearUnit
)

func (u TimeUnits) String() string {
	names := []string{"second", "minute", "hour", "day", "month", "year"}
	var b strings.Builder
	for i, n := range names {
		if u&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(n)
	}
	return b.String()
}

// TickHandler receives the current time and every unit that changed
// since the previous tick.
type TickHandler func(t time.Time, changed TimeUnits)

type tickService struct {
	units   TimeUnits
	handler TickHandler
	last    time.Time
}

// SubscribeTicks calls handler whenever one of units rolls over. A
// new subscription replaces the previous one.
func (h *Host) SubscribeTicks(units TimeUnits, handler TickHandler) {
	h.ticks = tickService{
		units:   units,
		handler: handler,
		last:    h.clock.Now(),
	}
}

func (h *Host) UnsubscribeTicks() {
	h.ticks = tickService{}
}

// Tick dispatches a tick for now if a subscribed unit changed. It must
// be called from the loop goroutine.
func (h *Host) Tick(now time.Time) {
	t := &h.ticks
	if t.handler == nil {
		return
	}
	changed := changedUnits(t.last, now)
	t.last = now
	if changed&t.units == 0 {
		return
	}
	t.handler(now, changed)
}

// changedUnits reports the units that differ between prev and now.
// A zero prev counts as every unit changing.
func changedUnits(prev, now time.Time) TimeUnits {
	if prev.IsZero() {
		return SecondUnit | MinuteUnit | HourUnit | DayUnit | MonthUnit | YearUnit
	}
	var u TimeUnits
	py, pm, pd := prev.Date()
	ny, nm, nd := now.Date()
	if py != ny {
		u |= YearUnit
	}
	if py != ny || pm != nm {
		u |= MonthUnit
	}
	if py != ny || pm != nm || pd != nd {
		u |= DayUnit
	}
	if u != 0 || prev.Hour() != now.Hour() {
		u |= HourUnit
	}
	if u != 0 || prev.Minute() != now.Minute() {
		u |= MinuteUnit
	}
	if u != 0 || prev.Second() != now.Second() {
		u |= SecondUnit
	}
	return u
}

// nextTick returns the next rollover of the smallest unit in units.
func nextTick(now time.Time, units TimeUnits) time.Time {
	y, m, d := now.Date()
	loc := now.Location()
	switch {
	case units&SecondUnit != 0:
		return now.Truncate(time.Second).Add(time.Second)
	case units&MinuteUnit != 0:
		return time.Date(y, m, d, now.Hour(), now.Minute()+1, 0, 0, loc)
	case units&HourUnit != 0:
		return time.Date(y, m, d, now.Hour()+1, 0, 0, 0, loc)
	case units&DayUnit != 0:
		return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	case units&MonthUnit != 0:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y+1, 1, 1, 0, 0, 0, 0, loc)
	}
}
