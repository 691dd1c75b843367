package worker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
)

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler("not a schedule", time.UTC, cron.FuncJob(func() {}), discardLogger())
	if err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestNewScheduler_UsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	c, err := NewScheduler("30 5 * * *", loc, cron.FuncJob(func() {}), discardLogger())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if c.Location() != loc {
		t.Errorf("location = %v, want %v", c.Location(), loc)
	}
	if n := len(c.Entries()); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
}

func TestNewScheduler_RecoversPanics(t *testing.T) {
	c, err := NewScheduler("@hourly", nil, cron.FuncJob(func() { panic("boom") }), discardLogger())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	entry := c.Entries()[0]
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("panic escaped the job chain: %v", r)
		}
	}()
	entry.WrappedJob.Run()
}

func TestNewScheduler_RunsJob(t *testing.T) {
	var runs atomic.Int32
	done := make(chan struct{}, 1)
	c, err := NewScheduler("@every 1s", time.UTC, cron.FuncJob(func() {
		if runs.Add(1) == 1 {
			done <- struct{}{}
		}
	}), discardLogger())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	c.Start()
	defer c.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}
