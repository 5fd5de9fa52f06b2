// Package models defines the day-scoped records moved through the pipeline.
//
// Optional measurements are pointers: nil means Garmin did not report the
// value and the formatter renders a placeholder.
package models

import "time"

// SleepRecord is a snapshot of one night's sleep, attributed to the calendar
// day it ended on. When Available is false Garmin had no sleep for the day
// and every other field except Date is zero.
type SleepRecord struct {
	Date      time.Time
	Available bool
	Score     *int
	Qualifier string
	Total     *time.Duration
	Deep      *time.Duration
	Light     *time.Duration
	REM       *time.Duration
	BedTime   *time.Time
	WakeTime  *time.Time
}

// WorkoutRecord is one activity on the target day. Distance is in meters,
// AvgSpeed in meters per second.
type WorkoutRecord struct {
	Type     string
	TypeKey  string
	Name     string
	Start    *time.Time
	Duration *time.Duration
	Distance *float64
	AvgHR    *float64
	Calories *float64
	AvgSpeed *float64
	Sets     *int
}

// DayRecords is everything fetched for one day, in fetch order.
type DayRecords struct {
	Date     time.Time
	Sleep    SleepRecord
	Workouts []WorkoutRecord
}

// NoteEntry is the single append produced by a run.
type NoteEntry struct {
	Path string
	Text string
}
