package clock

import (
	"testing"
	"time"
)

func TestCheckInAllowed_BeforeCutoff(t *testing.T) {
	c := NewFakeClock(mustParse("2026-08-03T09:00:00+05:30"))
	if !c.CheckInAllowed() {
		t.Error("check-in at 09:00:00 should be allowed (cutoff is 09:05:00)")
	}
}

func TestCheckInAllowed_AtCutoff(t *testing.T) {
	c := NewFakeClock(mustParse("2026-08-03T09:05:00+05:30"))
	if !c.CheckInAllowed() {
		t.Error("check-in exactly at the 09:05:00 cutoff should be allowed")
	}
}

func TestCheckInAllowed_AfterCutoff(t *testing.T) {
	c := NewFakeClock(mustParse("2026-08-03T09:05:01+05:30"))
	if c.CheckInAllowed() {
		t.Error("check-in one second after the cutoff should be blocked")
	}
}

func TestCheckOutAllowed_BeforeWindow(t *testing.T) {
	c := NewFakeClock(mustParse("2026-08-03T15:59:59+05:30"))
	if !c.CheckOutAllowed() {
		t.Error("check-out before 16:00 should be allowed")
	}
}

func TestCheckOutAllowed_InsideBlockedWindow(t *testing.T) {
	c := NewFakeClock(mustParse("2026-08-03T16:30:00+05:30"))
	if c.CheckOutAllowed() {
		t.Error("check-out inside the 16:00-17:25 window should be blocked")
	}
}

func TestCheckOutAllowed_AfterWindow(t *testing.T) {
	c := NewFakeClock(mustParse("2026-08-03T17:25:01+05:30"))
	if !c.CheckOutAllowed() {
		t.Error("check-out after 17:25 should be allowed")
	}
}

func TestFakeClock_Today_TruncatesToMidnight(t *testing.T) {
	c := NewFakeClock(mustParse("2026-08-03T14:37:22+05:30"))
	today := c.Today()
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 {
		t.Errorf("Today() = %v, want midnight", today)
	}
	if today.Day() != 3 {
		t.Errorf("Today().Day() = %d, want 3", today.Day())
	}
}

func TestFakeClock_Set(t *testing.T) {
	c := NewFakeClock(mustParse("2026-08-03T09:00:00+05:30"))
	c.Set(mustParse("2026-08-04T09:00:00+05:30"))
	if c.Today().Day() != 4 {
		t.Errorf("after Set, Today().Day() = %d, want 4", c.Today().Day())
	}
}

func mustParse(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
