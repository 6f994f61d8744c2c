package models

// Row shapes produced by the query layer. Column aliases in the repository
// queries match the db tags.

// ListInfoResult describes a list together with its parent's weight.
// ParentWeight is nil for root lists.
type ListInfoResult struct {
	Name         string  `db:"name" json:"name"`
	Weight       string  `db:"weight" json:"weight"`
	ParentWeight *string `db:"parent_weight" json:"parent_weight"`
}

// ListComponentResult is one current member of a list. NetSign is the sum of
// value signs for the (security, list) pair and is always positive here.
type ListComponentResult struct {
	Name                  string  `db:"name" json:"name"`
	Ticker                string  `db:"ticker" json:"ticker"`
	NetSign               int64   `db:"net_sign" json:"net_sign"`
	LatestChangeTimestamp int64   `db:"latest_change" json:"latest_change_timestamp"`
	Note                  *string `db:"note" json:"note"`
}

// PointsResult is a raw point total over the trailing window
type PointsResult struct {
	Name        string `db:"name" json:"name"`
	Ticker      string `db:"ticker" json:"ticker"`
	IRWebsite   string `db:"ir_website" json:"ir_website"`
	TotalPoints int64  `db:"total_points" json:"total_points"`
}

// TimeWeightedPointsResult is one qualifying event, before decay is applied
type TimeWeightedPointsResult struct {
	Name           string `db:"name" json:"name"`
	Ticker         string `db:"ticker" json:"ticker"`
	EventValue     int64  `db:"event_value" json:"event_value"`
	EventTimestamp int64  `db:"event_timestamp" json:"event_timestamp"`
}

// DecayWindow is the (now, window) pair a time-weighted query was run with
type DecayWindow struct {
	Now           int64
	WindowSeconds int64
}

// ListHistoryResult is one event on a list's timeline
type ListHistoryResult struct {
	Name           string `db:"name" json:"name"`
	Ticker         string `db:"ticker" json:"ticker"`
	EventName      string `db:"event_name" json:"event_name"`
	EventTimestamp int64  `db:"event_timestamp" json:"event_timestamp"`
}

// SecurityResult is a security joined with its country and currency dimensions
type SecurityResult struct {
	Name           string `db:"name" json:"name"`
	Country        string `db:"country" json:"country"`
	Currency       string `db:"currency" json:"currency"`
	CountryWeight  string `db:"country_weight" json:"country_weight"`
	CurrencyWeight string `db:"currency_weight" json:"currency_weight"`
	IRWebsite      string `db:"ir_website" json:"ir_website"`
}

// SecurityHistoryResult is one event on a security's cross-list timeline
type SecurityHistoryResult struct {
	ListName       string  `db:"list_name" json:"list_name"`
	EventName      string  `db:"event_name" json:"event_name"`
	EventTimestamp int64   `db:"event_timestamp" json:"event_timestamp"`
	ListTicker     string  `db:"list_ticker" json:"list_ticker"`
	Note           *string `db:"note" json:"note"`
}

// SecurityInfoResult is returned by name searches
type SecurityInfoResult struct {
	Ticker    string `db:"ticker" json:"ticker"`
	Name      string `db:"name" json:"name"`
	IRWebsite string `db:"ir_website" json:"ir_website"`
}

// SecurityCountryResult lists a security, or one of its alternate names,
// with its country name.
type SecurityCountryResult struct {
	Ticker    string `db:"ticker" json:"ticker"`
	Name      string `db:"name" json:"name"`
	IRWebsite string `db:"ir_website" json:"ir_website"`
	Country   string `db:"country" json:"country"`
}
