// Package markdown renders fetched day records as the fixed markdown block
// appended to the daily note. Every function here is pure: the same records
// always produce the same text.
package markdown

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"github.com/dmitrijs2005/garmin2obsidian/internal/models"
)

const (
	SleepHeading    = "## Sleep"
	WorkoutsHeading = "## Workouts"

	NoSleepLine    = "- No sleep data recorded"
	NoWorkoutsLine = "- No workouts recorded"
)

// FormatDay renders the sleep section followed by the workouts section.
// The result always ends with a newline.
func FormatDay(rec models.DayRecords) string {
	return FormatSleep(rec.Sleep) + "\n" + FormatWorkouts(rec.Workouts)
}

// FormatSleep renders the sleep section.
func FormatSleep(s models.SleepRecord) string {
	var b strings.Builder
	b.WriteString(SleepHeading + "\n")

	if !s.Available {
		b.WriteString(NoSleepLine + "\n")
		return b.String()
	}

	score := common.PlaceholderValue
	if s.Score != nil {
		score = fmt.Sprintf("%d", *s.Score)
		if s.Qualifier != "" {
			score += " (" + s.Qualifier + ")"
		}
	}

	fmt.Fprintf(&b, "- Score: %s\n", score)
	fmt.Fprintf(&b, "- Duration: %s\n", Duration(s.Total))
	fmt.Fprintf(&b, "- Deep: %s / Light: %s / REM: %s\n", Duration(s.Deep), Duration(s.Light), Duration(s.REM))
	fmt.Fprintf(&b, "- Bed: %s / Wake: %s\n", Clock(s.BedTime), Clock(s.WakeTime))
	return b.String()
}

// FormatWorkouts renders the workouts section, one line per workout in the
// given order. The section is present even when there are no workouts.
func FormatWorkouts(ws []models.WorkoutRecord) string {
	var b strings.Builder
	b.WriteString(WorkoutsHeading + "\n")

	if len(ws) == 0 {
		b.WriteString(NoWorkoutsLine + "\n")
		return b.String()
	}
	for _, w := range ws {
		b.WriteString(FormatWorkout(w) + "\n")
	}
	return b.String()
}

// FormatWorkout renders a single list line without a trailing newline:
//
//	- Run: 28m, 5.2km (Morning Tempo, start 07:05, pace 5:23/km, avg HR 151bpm, 410kcal)
//
// The parenthesised details start with the activity name and list only the
// metrics that are present.
func FormatWorkout(w models.WorkoutRecord) string {
	label := w.Type
	if label == "" {
		label = models.ActivityLabel(w.TypeKey)
	}

	line := fmt.Sprintf("- %s: %s, %s", label, Duration(w.Duration), Distance(w.Distance))

	if details := workoutDetails(w); len(details) > 0 {
		line += " (" + strings.Join(details, ", ") + ")"
	}
	return line
}

func workoutDetails(w models.WorkoutRecord) []string {
	var details []string

	if name := strings.TrimSpace(w.Name); name != "" {
		details = append(details, name)
	}
	if w.Start != nil {
		details = append(details, "start "+w.Start.Format("15:04"))
	}
	if strings.Contains(w.TypeKey, "running") {
		if pace := Pace(w.AvgSpeed); pace != common.PlaceholderValue {
			details = append(details, "pace "+pace)
		}
	}
	if w.TypeKey == "strength_training" && w.Sets != nil {
		details = append(details, fmt.Sprintf("%d sets", *w.Sets))
	}
	if w.AvgHR != nil && *w.AvgHR > 0 {
		details = append(details, fmt.Sprintf("avg HR %dbpm", int(math.Round(*w.AvgHR))))
	}
	if w.Calories != nil && *w.Calories > 0 {
		details = append(details, fmt.Sprintf("%dkcal", int(math.Round(*w.Calories))))
	}
	return details
}

// Duration renders d rounded to the minute as "7h20m" or "28m".
func Duration(d *time.Duration) string {
	if d == nil || *d < 0 {
		return common.PlaceholderValue
	}
	total := int(d.Round(time.Minute) / time.Minute)
	h, m := total/60, total%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}

// Distance renders meters as kilometers with one decimal, e.g. "5.2km".
// Absent or zero distances render as the placeholder.
func Distance(meters *float64) string {
	if meters == nil || *meters <= 0 {
		return common.PlaceholderValue
	}
	return fmt.Sprintf("%.1fkm", *meters/1000)
}

// Pace renders a speed in m/s as minutes per kilometer, e.g. "5:23/km".
func Pace(speed *float64) string {
	if speed == nil || *speed <= 0 {
		return common.PlaceholderValue
	}
	secPerKm := int(math.Round(1000 / *speed))
	return fmt.Sprintf("%d:%02d/km", secPerKm/60, secPerKm%60)
}

// Clock renders the wall-clock reading of t as "HH:MM".
func Clock(t *time.Time) string {
	if t == nil {
		return common.PlaceholderValue
	}
	return t.Format("15:04")
}
