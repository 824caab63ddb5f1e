package model

// AppConfig holds application-wide preferences and defaults for new jobs.
type AppConfig struct {
	DefaultStrategy     string `json:"default_strategy"`
	DefaultPalletPreset string `json:"default_pallet_preset"`
	MaxFloorsPerPallet  int    `json:"max_floors_per_pallet"`
	NamePrefix          string `json:"name_prefix"`

	// Report preferences
	ReportTitle  string   `json:"report_title"`
	ShowWarnings bool     `json:"show_warnings"`
	RecentJobs   []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultStrategy:     "material-grouping",
		DefaultPalletPreset: "EUR",
		MaxFloorsPerPallet:  1,
		NamePrefix:          "Pallet",
		ReportTitle:         "Pallet Load Report",
		ShowWarnings:        true,
		RecentJobs:          []string{},
	}
}

// MaxRecentJobs bounds the recent job list.
const MaxRecentJobs = 10

// AddRecentJob moves path to the front of the recent job list, dropping
// duplicates and entries beyond MaxRecentJobs.
func (c *AppConfig) AddRecentJob(path string) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path && len(recent) < MaxRecentJobs {
			recent = append(recent, p)
		}
	}
	c.RecentJobs = recent
}
