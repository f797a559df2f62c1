package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

func LastDayOfMonth(date time.Time) time.Time {
	return FirstDayOfMonth(date).AddDate(0, 1, -1)
}

// MaxDate retorna a maior entre as duas datas
func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// MinDate retorna a menor entre as duas datas
func MinDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
