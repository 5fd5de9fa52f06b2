package models

import "strings"

var activityLabels = map[string]string{
	"running":             "Run",
	"trail_running":       "Trail Run",
	"treadmill_running":   "Treadmill Run",
	"track_running":       "Track Run",
	"walking":             "Walk",
	"hiking":              "Hike",
	"cycling":             "Ride",
	"road_biking":         "Road Ride",
	"mountain_biking":     "MTB Ride",
	"indoor_cycling":      "Indoor Ride",
	"lap_swimming":        "Pool Swim",
	"open_water_swimming": "Open Water Swim",
	"strength_training":   "Strength",
	"yoga":                "Yoga",
	"pilates":             "Pilates",
	"lacrosse":            "Lacrosse",
	"indoor_rowing":       "Row",
	"elliptical":          "Elliptical",
	"hiit":                "HIIT",
}

// ActivityLabel maps a Garmin activity type key to a short display label.
// Unknown keys are title-cased ("stand_up_paddleboarding" becomes
// "Stand Up Paddleboarding"); an empty key becomes "Activity".
func ActivityLabel(typeKey string) string {
	key := strings.ToLower(strings.TrimSpace(typeKey))
	if label, ok := activityLabels[key]; ok {
		return label
	}
	if key == "" {
		return "Activity"
	}

	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
