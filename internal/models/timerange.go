package models

// TimeRange represents the selected history time range.
type TimeRange int

const (
	// TimeRange12Months shows the last 12 calendar months.
	TimeRange12Months TimeRange = iota
	// TimeRange24Months shows the last 24 calendar months.
	TimeRange24Months
	// TimeRange5Years shows the last 5 years.
	TimeRange5Years
	// TimeRangeAllTime shows all available history.
	TimeRangeAllTime
)

// String returns the display name for a time range.
func (t TimeRange) String() string {
	switch t {
	case TimeRange12Months:
		return "12 Months"
	case TimeRange24Months:
		return "24 Months"
	case TimeRange5Years:
		return "5 Years"
	case TimeRangeAllTime:
		return "All Time"
	default:
		return "Unknown"
	}
}

// Months returns the number of months for the time range (0 = unlimited).
func (t TimeRange) Months() int {
	switch t {
	case TimeRange12Months:
		return 12
	case TimeRange24Months:
		return 24
	case TimeRange5Years:
		return 60
	case TimeRangeAllTime:
		return 0
	default:
		return 12
	}
}

// Next cycles to the next time range.
func (t TimeRange) Next() TimeRange {
	return (t + 1) % 4
}
