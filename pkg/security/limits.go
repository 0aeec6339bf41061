package security

// Limits holds the abuse-control ceilings. Zero-valued fields in a YAML
// override fall back to defaults at load time, so the file may list only the
// limits it changes.
type Limits struct {
	MaxRequestsPerMinute int `yaml:"max_requests_per_minute"`
	MaxRequestsPerHour   int `yaml:"max_requests_per_hour"`
	MaxRequestsPerDay    int `yaml:"max_requests_per_day"`

	BurstThreshold   int     `yaml:"burst_threshold"`
	BurstWindowSec   float64 `yaml:"burst_window_sec"`
	CommandCooldown  float64 `yaml:"command_cooldown_sec"`
	MinMessageGapSec float64 `yaml:"min_message_gap_sec"`

	MaxIdenticalMessages     int     `yaml:"max_identical_messages"`
	IdenticalMessageWindow   float64 `yaml:"identical_message_window_sec"`
	MaxCallbacksPerSecond    int     `yaml:"max_callbacks_per_second"`
	MaxIdenticalCallbacks    int     `yaml:"max_identical_callbacks"`
	IdenticalCallbackWindow  float64 `yaml:"identical_callback_window_sec"`
	MaxSurveyDurationSec     float64 `yaml:"max_survey_duration_sec"`
	MaxStateChangesPerMinute int     `yaml:"max_state_changes_per_minute"`

	BlockScoreThreshold  int     `yaml:"block_score_threshold"`
	InitialBlockDuration float64 `yaml:"initial_block_duration_sec"`
	MaxBlockDuration     float64 `yaml:"max_block_duration_sec"`

	CleanupIntervalSec float64 `yaml:"cleanup_interval_sec"`
	IdleCutoffSec      float64 `yaml:"idle_cutoff_sec"`
}

// DefaultLimits returns the production defaults. They are deliberately loose
// around multi-select toggling so legitimate rapid tapping is not penalized.
func DefaultLimits() Limits {
	return Limits{
		MaxRequestsPerMinute: 30,
		MaxRequestsPerHour:   200,
		MaxRequestsPerDay:    1000,

		BurstThreshold:   10,
		BurstWindowSec:   2.0,
		CommandCooldown:  2.0,
		MinMessageGapSec: 0.5,

		MaxIdenticalMessages:     5,
		IdenticalMessageWindow:   60,
		MaxCallbacksPerSecond:    5,
		MaxIdenticalCallbacks:    10,
		IdenticalCallbackWindow:  3.0,
		MaxSurveyDurationSec:     3600,
		MaxStateChangesPerMinute: 20,

		BlockScoreThreshold:  20,
		InitialBlockDuration: 300,
		MaxBlockDuration:     86400,

		CleanupIntervalSec: 3600,
		IdleCutoffSec:      86400,
	}
}

// Merge overlays non-zero fields of o onto l.
func (l Limits) Merge(o Limits) Limits {
	if o.MaxRequestsPerMinute != 0 {
		l.MaxRequestsPerMinute = o.MaxRequestsPerMinute
	}
	if o.MaxRequestsPerHour != 0 {
		l.MaxRequestsPerHour = o.MaxRequestsPerHour
	}
	if o.MaxRequestsPerDay != 0 {
		l.MaxRequestsPerDay = o.MaxRequestsPerDay
	}
	if o.BurstThreshold != 0 {
		l.BurstThreshold = o.BurstThreshold
	}
	if o.BurstWindowSec != 0 {
		l.BurstWindowSec = o.BurstWindowSec
	}
	if o.CommandCooldown != 0 {
		l.CommandCooldown = o.CommandCooldown
	}
	if o.MinMessageGapSec != 0 {
		l.MinMessageGapSec = o.MinMessageGapSec
	}
	if o.MaxIdenticalMessages != 0 {
		l.MaxIdenticalMessages = o.MaxIdenticalMessages
	}
	if o.IdenticalMessageWindow != 0 {
		l.IdenticalMessageWindow = o.IdenticalMessageWindow
	}
	if o.MaxCallbacksPerSecond != 0 {
		l.MaxCallbacksPerSecond = o.MaxCallbacksPerSecond
	}
	if o.MaxIdenticalCallbacks != 0 {
		l.MaxIdenticalCallbacks = o.MaxIdenticalCallbacks
	}
	if o.IdenticalCallbackWindow != 0 {
		l.IdenticalCallbackWindow = o.IdenticalCallbackWindow
	}
	if o.MaxSurveyDurationSec != 0 {
		l.MaxSurveyDurationSec = o.MaxSurveyDurationSec
	}
	if o.MaxStateChangesPerMinute != 0 {
		l.MaxStateChangesPerMinute = o.MaxStateChangesPerMinute
	}
	if o.BlockScoreThreshold != 0 {
		l.BlockScoreThreshold = o.BlockScoreThreshold
	}
	if o.InitialBlockDuration != 0 {
		l.InitialBlockDuration = o.InitialBlockDuration
	}
	if o.MaxBlockDuration != 0 {
		l.MaxBlockDuration = o.MaxBlockDuration
	}
	if o.CleanupIntervalSec != 0 {
		l.CleanupIntervalSec = o.CleanupIntervalSec
	}
	if o.IdleCutoffSec != 0 {
		l.IdleCutoffSec = o.IdleCutoffSec
	}
	return l
}
