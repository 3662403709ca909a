package config

// SiteConfig describes the booking site and the search form values
type SiteConfig struct {
	BaseURL      string `json:"base_url" yaml:"base_url"`
	Username     string `json:"username" yaml:"username"`
	Password     string `json:"password" yaml:"password"`
	LoginEnabled bool   `json:"login_enabled" yaml:"login_enabled"` // the search works anonymously
	CountryID    string `json:"country_id" yaml:"country_id"`       // <option value> of the country select
	Location     string `json:"location" yaml:"location"`           // visible label
	TestType     string `json:"test_type" yaml:"test_type"`         // visible label
	VenueName    string `json:"venue_name" yaml:"venue_name"`
	VenueID      string `json:"venue_id" yaml:"venue_id"` // numeric suffix of the venue panel ids
}

// TargetConfig is the set of months of interest
type TargetConfig struct {
	Months []int `json:"months" yaml:"months"`
	Year   int   `json:"year" yaml:"year"`
}

// NewSiteConfig returns the defaults for the IELTS Ankara search
func NewSiteConfig() *SiteConfig {
	return &SiteConfig{
		BaseURL:   "https://ielts.idp.com/book/IELTS",
		CountryID: "212",
		Location:  "Ankara",
		TestType:  "Academic - IELTS",
		VenueName: "Bilkent University",
		VenueID:   "1771",
	}
}

// NewTargetConfig returns July and August 2025
func NewTargetConfig() *TargetConfig {
	return &TargetConfig{
		Months: []int{7, 8},
		Year:   2025,
	}
}
