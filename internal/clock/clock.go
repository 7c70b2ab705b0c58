// Package clock provides the authoritative notion of "now" for the
// attendance and payroll engines. Every window check goes through a Clock
// so that tests can pin time without touching the system clock.
package clock

import "time"

// officeLocation is the single fixed IANA zone the authority operates in.
// There is deliberately no per-tenant override.
var officeLocation = mustLoadLocation("Asia/Kolkata")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Asia/Kolkata ships with every standard Go tzdata build; a missing
		// zoneinfo database is a deployment defect, not a runtime one.
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

// checkInCutoff and the checkout blackout window are expressed as
// hour/minute/second triples in office-local time.
var (
	checkInCutoffHour, checkInCutoffMin, checkInCutoffSec = 9, 5, 0

	checkoutBlockStartHour, checkoutBlockStartMin = 16, 0
	checkoutBlockEndHour, checkoutBlockEndMin     = 17, 25
)

// Clock is the only source of "now" consumed by the attendance and payroll
// engines. Implementations must be safe for concurrent use.
type Clock interface {
	// Now returns the current instant in the office timezone.
	Now() time.Time
	// Today returns the current calendar date (midnight, office timezone).
	Today() time.Time
	// CheckInAllowed reports whether a check-in submitted right now falls
	// within the permitted window.
	CheckInAllowed() bool
	// CheckOutAllowed reports whether a check-out submitted right now falls
	// within the permitted window.
	CheckOutAllowed() bool
	// Location returns the office's fixed IANA timezone.
	Location() *time.Location
}

// RealClock reads the system clock and converts into the office timezone.
type RealClock struct{}

// NewRealClock returns a Clock backed by the system wall clock.
func NewRealClock() RealClock { return RealClock{} }

func (RealClock) Now() time.Time { return time.Now().In(officeLocation) }

func (c RealClock) Today() time.Time {
	n := c.Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, officeLocation)
}

func (c RealClock) CheckInAllowed() bool {
	return checkInAllowed(c.Now())
}

func (c RealClock) CheckOutAllowed() bool {
	return checkOutAllowed(c.Now())
}

func (RealClock) Location() *time.Location { return officeLocation }

func checkInAllowed(now time.Time) bool {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(),
		checkInCutoffHour, checkInCutoffMin, checkInCutoffSec, 0, now.Location())
	return !now.After(cutoff)
}

func checkOutAllowed(now time.Time) bool {
	blockStart := time.Date(now.Year(), now.Month(), now.Day(),
		checkoutBlockStartHour, checkoutBlockStartMin, 0, 0, now.Location())
	blockEnd := time.Date(now.Year(), now.Month(), now.Day(),
		checkoutBlockEndHour, checkoutBlockEndMin, 0, 0, now.Location())
	if now.Before(blockStart) {
		return true
	}
	if now.After(blockEnd) {
		return true
	}
	return false
}

// FakeClock is a deterministic Clock for tests; it never reads the system
// clock and only advances when Set is called.
type FakeClock struct {
	t time.Time
}

// NewFakeClock pins the clock at t, converted into office-local time
// (Set converts the same way).
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{t: t.In(officeLocation)}
}

// Set moves the fake clock to a new instant.
func (f *FakeClock) Set(t time.Time) { f.t = t.In(officeLocation) }

func (f *FakeClock) Now() time.Time { return f.t }

func (f *FakeClock) Today() time.Time {
	return time.Date(f.t.Year(), f.t.Month(), f.t.Day(), 0, 0, 0, 0, officeLocation)
}

func (f *FakeClock) CheckInAllowed() bool  { return checkInAllowed(f.t) }
func (f *FakeClock) CheckOutAllowed() bool { return checkOutAllowed(f.t) }
func (f *FakeClock) Location() *time.Location { return officeLocation }
