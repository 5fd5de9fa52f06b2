package common

// AppName is used as the tracer name, metrics namespace and log source.
const AppName = "garmin2obsidian"

// PlaceholderValue is rendered in place of any value Garmin did not report.
const PlaceholderValue = "N/A"
