package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default engine settings applied to new plans
	DefaultWidthFillStop     float64 `json:"default_width_fill_stop"`
	DefaultMaxXAnchors       int     `json:"default_max_x_anchors"`
	DefaultMaxZAnchors       int     `json:"default_max_z_anchors"`
	DefaultSweepBudgetFactor int     `json:"default_sweep_budget_factor"`
	DefaultProgressInterval  int     `json:"default_progress_interval"`

	// Application preferences
	RecentPlans  []string `json:"recent_plans"`
	HistoryLimit int      `json:"history_limit"` // Max runs kept in the history store
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultPackSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultPackSettings()
	return AppConfig{
		DefaultWidthFillStop:     defaults.WidthFillStop,
		DefaultMaxXAnchors:       defaults.MaxXAnchors,
		DefaultMaxZAnchors:       defaults.MaxZAnchors,
		DefaultSweepBudgetFactor: defaults.SweepBudgetFactor,
		DefaultProgressInterval:  defaults.ProgressInterval,
		RecentPlans:              []string{},
		HistoryLimit:             200,
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// PackSettings struct. Used when creating a new plan so it inherits the
// user's saved defaults.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	s.WidthFillStop = c.DefaultWidthFillStop
	s.MaxXAnchors = c.DefaultMaxXAnchors
	s.MaxZAnchors = c.DefaultMaxZAnchors
	s.SweepBudgetFactor = c.DefaultSweepBudgetFactor
	s.ProgressInterval = c.DefaultProgressInterval
}
