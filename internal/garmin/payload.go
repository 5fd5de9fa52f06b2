package garmin

// SleepDTO mirrors the dailySleepDTO object of the wellness sleep endpoint.
// Every measurement is optional; Garmin returns nulls for days without a
// recorded sleep.
type SleepDTO struct {
	CalendarDate             string       `json:"calendarDate"`
	SleepTimeSeconds         *int64       `json:"sleepTimeSeconds"`
	DeepSleepSeconds         *int64       `json:"deepSleepSeconds"`
	LightSleepSeconds        *int64       `json:"lightSleepSeconds"`
	RemSleepSeconds          *int64       `json:"remSleepSeconds"`
	AwakeSleepSeconds        *int64       `json:"awakeSleepSeconds"`
	SleepStartTimestampLocal *int64       `json:"sleepStartTimestampLocal"`
	SleepEndTimestampLocal   *int64       `json:"sleepEndTimestampLocal"`
	SleepScores              *SleepScores `json:"sleepScores"`
}

type SleepScores struct {
	Overall *ScoreDTO `json:"overall"`
}

type ScoreDTO struct {
	Value        *int   `json:"value"`
	QualifierKey string `json:"qualifierKey"`
}

type sleepResponse struct {
	DailySleepDTO *SleepDTO `json:"dailySleepDTO"`
}

// ActivityDTO is one entry of ActivitiesForDay.payload. Distance is in
// meters, Duration in seconds, AverageSpeed in m/s.
type ActivityDTO struct {
	ActivityID     int64            `json:"activityId"`
	ActivityName   string           `json:"activityName"`
	ActivityType   *ActivityTypeDTO `json:"activityType"`
	StartTimeLocal string           `json:"startTimeLocal"`
	StartTimeGMT   string           `json:"startTimeGMT"`
	Distance       *float64         `json:"distance"`
	Duration       *float64         `json:"duration"`
	AverageHR      *float64         `json:"averageHR"`
	Calories       *float64         `json:"calories"`
	AverageSpeed   *float64         `json:"averageSpeed"`
	ActiveSets     *int             `json:"activeSets"`
}

type ActivityTypeDTO struct {
	TypeKey string `json:"typeKey"`
}

type activitiesResponse struct {
	ActivitiesForDay *struct {
		Payload []ActivityDTO `json:"payload"`
	} `json:"ActivitiesForDay"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

type profileResponse struct {
	DisplayName string `json:"displayName"`
	FullName    string `json:"fullName"`
}
