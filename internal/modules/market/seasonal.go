package market

import "time"

// seasonalIndexByMonth encodes typical landlord concession pressure per
// calendar month (0-100). Winter months peak because vacancies are hardest
// to fill; summer demand strips renters of leverage. These values are
// domain judgment, not derived from data.
var seasonalIndexByMonth = map[time.Month]float64{
	time.January:   90,
	time.February:  85,
	time.March:     70,
	time.April:     55,
	time.May:       40,
	time.June:      25,
	time.July:      20,
	time.August:    15,
	time.September: 30,
	time.October:   50,
	time.November:  70,
	time.December:  85,
}

// SeasonalIndex returns the concession-pressure index for the given date.
func SeasonalIndex(date time.Time) float64 {
	if idx, ok := seasonalIndexByMonth[date.Month()]; ok {
		return idx
	}
	return 50
}

// quarterEndMonths are the months with quarterly leasing quotas.
var quarterEndMonths = map[time.Month]bool{
	time.March:     true,
	time.June:      true,
	time.September: true,
	time.December:  true,
}

// lastDayOfMonth returns the number of days in the date's month.
func lastDayOfMonth(date time.Time) int {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
}

// IsQuarterEndPressure reports whether the date falls in the last 14 days
// of a quarter-closing month.
func IsQuarterEndPressure(date time.Time) bool {
	return quarterEndMonths[date.Month()] && date.Day() > lastDayOfMonth(date)-14
}

// IsMonthEndPressure reports whether the date falls in the last 7 days of
// any month.
func IsMonthEndPressure(date time.Time) bool {
	return date.Day() > lastDayOfMonth(date)-7
}

// NextQuarterEnd returns the last day of the current quarter.
func NextQuarterEnd(now time.Time) time.Time {
	month := now.Month()

	var quarterEndMonth time.Month
	switch {
	case month <= time.March:
		quarterEndMonth = time.March
	case month <= time.June:
		quarterEndMonth = time.June
	case month <= time.September:
		quarterEndMonth = time.September
	default:
		quarterEndMonth = time.December
	}

	return time.Date(now.Year(), quarterEndMonth+1, 0, 0, 0, 0, 0, now.Location())
}

// NextMonthEnd returns the last day of the current month.
func NextMonthEnd(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
}
