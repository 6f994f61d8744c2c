package models

// CreateSecurityRequest represents the request body for adding a security
type CreateSecurityRequest struct {
	Ticker    string `json:"ticker" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Country   string `json:"country" binding:"required"`
	Currency  string `json:"currency" binding:"required"`
	IRWebsite string `json:"ir_website"`
}

// CreateAltNameRequest represents the request body for adding an alternate name
type CreateAltNameRequest struct {
	AltName string `json:"alt_name" binding:"required"`
}

// CreateEarningsDateRequest represents the request body for adding an earnings date.
// Source defaults to native.
type CreateEarningsDateRequest struct {
	Ticker string         `json:"ticker" binding:"required"`
	Date   ListDate       `json:"date" binding:"required"`
	Source EarningsSource `json:"source"`
}

// CreateListChangeRequest represents the request body for recording a list change
type CreateListChangeRequest struct {
	Ticker string   `json:"ticker" binding:"required"`
	List   string   `json:"list" binding:"required"`
	Event  string   `json:"event" binding:"required"`
	Date   ListDate `json:"date" binding:"required"`
	Note   *string  `json:"note"`
}

// CreateWeightRequest represents the request body for adding a weight
type CreateWeightRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateDimensionRequest represents the request body for adding a country or currency
type CreateDimensionRequest struct {
	Ticker string `json:"ticker" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Weight string `json:"weight" binding:"required"`
}

// CreateListRequest represents the request body for adding a list.
// An empty Parent creates a root list.
type CreateListRequest struct {
	Ticker string `json:"ticker" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Weight string `json:"weight" binding:"required"`
	Parent string `json:"parent"`
}

// CreateEventRequest represents the request body for adding a list change event kind.
// Pointers let a zero sign or value pass the required check.
type CreateEventRequest struct {
	Ticker    string `json:"ticker" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ValueSign *int   `json:"value_sign" binding:"required"`
	Value     *int   `json:"value" binding:"required"`
}

// CreatedResponse is returned by insert endpoints
type CreatedResponse struct {
	ID     int64  `json:"id,omitempty"`
	Ticker string `json:"ticker,omitempty"`
	Name   string `json:"name,omitempty"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DateView carries an epoch timestamp and its dd.mm.yy rendering
type DateView struct {
	Epoch int64  `json:"epoch"`
	Date  string `json:"date"`
}

// DatesSummary collects a security's earnings dates relative to now.
// IRWebsite is set when no upcoming earnings date is known.
type DatesSummary struct {
	Bloomberg *DateView `json:"bloomberg"`
	Next      *DateView `json:"next"`
	Previous  *DateView `json:"previous"`
	IRWebsite string    `json:"ir_website,omitempty"`
}

// ListComponentView is one current member of a list with its earnings summary
type ListComponentView struct {
	Name         string        `json:"name"`
	Ticker       string        `json:"ticker"`
	NetSign      int64         `json:"net_sign"`
	LatestChange DateView      `json:"latest_change"`
	Note         *string       `json:"note,omitempty"`
	Dates        *DatesSummary `json:"dates,omitempty"`
}

// ListResponse represents a list with its current components
type ListResponse struct {
	Ticker       string              `json:"ticker"`
	Name         string              `json:"name"`
	Weight       string              `json:"weight"`
	ParentWeight *string             `json:"parent_weight"`
	Components   []ListComponentView `json:"components"`
}

// ChildListsResponse represents every child of a list with its components
type ChildListsResponse struct {
	Parent string         `json:"parent"`
	Lists  []ListResponse `json:"lists"`
}

// ListHistoryEntry is one change on a list's timeline
type ListHistoryEntry struct {
	Name   string   `json:"name"`
	Ticker string   `json:"ticker"`
	Event  string   `json:"event"`
	Date   DateView `json:"date"`
}

// ListHistoryResponse represents a list's change history, newest first
type ListHistoryResponse struct {
	Ticker  string             `json:"ticker"`
	Entries []ListHistoryEntry `json:"entries"`
}

// PointsResponse represents raw point totals over a trailing window
type PointsResponse struct {
	Days   int            `json:"days"`
	Points []PointsResult `json:"points"`
}

// WeightedScoreEntry is one ranked security. Score is rounded to two decimals.
type WeightedScoreEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Score  string `json:"score"`
}

// WeightedPointsResponse represents a time-weighted ranking, highest score first
type WeightedPointsResponse struct {
	Days    int                  `json:"days"`
	AsOf    DateView             `json:"as_of"`
	Country *string              `json:"country,omitempty"`
	Scores  []WeightedScoreEntry `json:"scores"`
}

// PointsSummary is a security's scores over the default window
type PointsSummary struct {
	TimeWeighted string `json:"time_weighted"`
	Points       int64  `json:"points"`
}

// SecurityHistoryEntry is one change on a security's timeline
type SecurityHistoryEntry struct {
	Event string   `json:"event"`
	Date  DateView `json:"date"`
	Note  *string  `json:"note,omitempty"`
}

// SecurityListHistory groups a security's changes on one list
type SecurityListHistory struct {
	ListTicker   string                 `json:"list_ticker"`
	ListName     string                 `json:"list_name"`
	Weight       string                 `json:"weight"`
	ParentWeight *string                `json:"parent_weight"`
	Entries      []SecurityHistoryEntry `json:"entries"`
}

// EarningsResponse lists a security's earnings dates, newest first
type EarningsResponse struct {
	Ticker    string       `json:"ticker"`
	Native    []DateView   `json:"native"`
	Bloomberg []DateView   `json:"bloomberg"`
	Summary   DatesSummary `json:"summary"`
}

// SecurityDetailResponse represents everything known about one security
type SecurityDetailResponse struct {
	Ticker   string                `json:"ticker"`
	Security SecurityResult        `json:"security"`
	Points   PointsSummary         `json:"points"`
	History  []SecurityListHistory `json:"history"`
	Earnings EarningsResponse      `json:"earnings"`
}

// ImportRejection reports one CSV row that was not written
type ImportRejection struct {
	Row    int    `json:"row"`
	Ticker string `json:"ticker,omitempty"`
	Error  string `json:"error"`
}

// ImportListChangesResponse summarizes a CSV import
type ImportListChangesResponse struct {
	Imported int               `json:"imported"`
	Rejected []ImportRejection `json:"rejected"`
	Warnings []Warning         `json:"warnings,omitempty"`
}

// SyncEarningsResponse summarizes an earnings calendar sync for one ticker
type SyncEarningsResponse struct {
	Ticker   string    `json:"ticker"`
	Symbol   string    `json:"symbol"`
	Added    []int64   `json:"added"`
	Skipped  int       `json:"skipped"`
	Warnings []Warning `json:"warnings,omitempty"`
}
