package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = list change import, W2xxx = earnings sync.
type WarningCode string

const (
	WarnImportRowSkipped    WarningCode = "W1001" // blank or comment row ignored
	WarnImportExtraColumns  WarningCode = "W1002" // note columns beyond the first were joined
	WarnEarningsNotReported WarningCode = "W2001" // provider returned no row for the symbol
	WarnEarningsBadDate     WarningCode = "W2002" // provider row with an unparseable report date (dropped)
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
