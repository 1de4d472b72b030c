package arcade

import (
	"fmt"
	"time"
)

type PostTime struct {
	Hour, Minute int
}

// DefaultSchedule is the daily list of post times.
var DefaultSchedule = []PostTime{
	{9, 55}, {10, 55}, {11, 55}, {12, 30},
	{13, 55}, {14, 55}, {15, 55}, {16, 55}, {17, 55},
}

type RaceStatus string

const (
	StatusClosed  RaceStatus = "CLOSED"
	StatusOpen    RaceStatus = "OPEN"
	StatusRunning RaceStatus = "RUNNING"
)

const (
	votingWindow  = 60 * time.Minute
	runningWindow = 5 * time.Minute
)

// Slot is a race on a given day.
type Slot struct {
	ID   string
	Post time.Time
}

// RaceID formats the id for a post time on the day of t: YYYYMMDD_HHMM.
func RaceID(t time.Time, p PostTime) string {
	return fmt.Sprintf("%s_%02d%02d", t.Format("20060102"), p.Hour, p.Minute)
}

// PostOf parses a race id back into its post time in loc.
func PostOf(raceID string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("20060102_1504", raceID, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse race id %q: %w", raceID, err)
	}
	return t, nil
}

// ScheduleStatus reports where now sits in the day's schedule. Betting opens
// an hour before post and the race counts as running for five minutes after.
// Outside those windows the status is CLOSED and the slot is the next race of
// the day, if any.
func ScheduleStatus(schedule []PostTime, now time.Time) (RaceStatus, *Slot) {
	var next *Slot
	for _, p := range schedule {
		post := time.Date(now.Year(), now.Month(), now.Day(), p.Hour, p.Minute, 0, 0, now.Location())
		slot := &Slot{ID: RaceID(now, p), Post: post}
		switch {
		case !now.Before(post.Add(-votingWindow)) && now.Before(post):
			return StatusOpen, slot
		case !now.Before(post) && now.Before(post.Add(runningWindow)):
			return StatusRunning, slot
		case now.Before(post.Add(-votingWindow)) && next == nil:
			next = slot
		}
	}
	return StatusClosed, next
}
