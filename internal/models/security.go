package models

// Surrogate keys. Each table gets its own type so a list id can never be
// passed where a security id is expected.
type (
	SecurityID int64
	ListID     int64
	EventID    int64
	CountryID  int64
	CurrencyID int64
	WeightID   int64
)

// Weight is a display-ranking dimension shared by countries, currencies and lists
type Weight struct {
	ID   WeightID `db:"weight_id" json:"id"`
	Name string   `db:"name" json:"name"`
}

// Country represents a row of countries, keyed naturally by Ticker (e.g. "US")
type Country struct {
	ID       CountryID `db:"country_id" json:"id"`
	Ticker   string    `db:"ticker" json:"ticker"`
	Name     string    `db:"name" json:"name"`
	WeightID WeightID  `db:"weight_id" json:"weight_id"`
}

// Currency represents a row of currencies, keyed naturally by Ticker (e.g. "USD")
type Currency struct {
	ID       CurrencyID `db:"currency_id" json:"id"`
	Ticker   string     `db:"ticker" json:"ticker"`
	Name     string     `db:"name" json:"name"`
	WeightID WeightID   `db:"weight_id" json:"weight_id"`
}

// Security represents a tracked equity
type Security struct {
	ID         SecurityID `db:"security_id" json:"id"`
	Ticker     string     `db:"ticker" json:"ticker"`
	Name       string     `db:"name" json:"name"`
	CountryID  CountryID  `db:"country_id" json:"country_id"`
	CurrencyID CurrencyID `db:"currency_id" json:"currency_id"`
	IRWebsite  string     `db:"ir_website" json:"ir_website"`
}

// PrefList is a preference list. ParentID is nil for root lists.
type PrefList struct {
	ID       ListID   `db:"list_id" json:"id"`
	Ticker   string   `db:"ticker" json:"ticker"`
	Name     string   `db:"name" json:"name"`
	WeightID WeightID `db:"weight_id" json:"weight_id"`
	ParentID *ListID  `db:"parent_list_id" json:"parent_list_id,omitempty"`
}

// ListChangeEvent is a catalog entry describing one kind of list change and
// its point contribution.
type ListChangeEvent struct {
	ID        EventID `db:"event_id" json:"id"`
	Ticker    string  `db:"ticker" json:"ticker"`
	Name      string  `db:"name" json:"name"`
	ValueSign int     `db:"value_sign" json:"value_sign"`
	Value     int     `db:"value" json:"value"`
}

// NewSecurity is the natural-key form of a security insert
type NewSecurity struct {
	Ticker    string
	Name      string
	Country   string // countries.ticker
	Currency  string // currencies.ticker
	IRWebsite string
}

// NewListChange is the natural-key form of a list change insert.
// Timestamp is epoch seconds.
type NewListChange struct {
	SecurityTicker string
	ListTicker     string
	EventTicker    string
	Timestamp      int64
	Note           *string
}

// EarningsSource selects which earnings fact table a date belongs to
type EarningsSource string

const (
	EarningsSourceNative    EarningsSource = "native"
	EarningsSourceBloomberg EarningsSource = "bloomberg"
)

// NewEarningsDate is the natural-key form of an earnings date insert
type NewEarningsDate struct {
	SecurityTicker string
	Timestamp      int64
	Source         EarningsSource
}

// CatalogSnapshot is every reference table loaded at once
type CatalogSnapshot struct {
	Weights    []Weight
	Countries  []Country
	Currencies []Currency
	Lists      []PrefList
	Events     []ListChangeEvent
}
