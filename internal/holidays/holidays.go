// Package holidays carries the fixed Dominican Republic holiday calendar
// overlaid onto calendar reads. The table is static reference data, not a
// persisted collection.
package holidays

import (
	"time"

	"github.com/crixfer/DIID-GS/internal/models"
)

func mustDay(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

var table = []models.Holiday{
	{Date: mustDay("2024-01-01"), Name: "New Year's Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2024-01-21"), Name: "Our Lady of Altagracia", Type: models.HolidayTypeReligious},
	{Date: mustDay("2024-01-26"), Name: "Juan Pablo Duarte Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2024-02-27"), Name: "Independence Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2024-03-29"), Name: "Good Friday", Type: models.HolidayTypeReligious},
	{Date: mustDay("2024-05-01"), Name: "Labor Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2024-05-30"), Name: "Corpus Christi", Type: models.HolidayTypeReligious},
	{Date: mustDay("2024-08-16"), Name: "Restoration Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2024-09-24"), Name: "Our Lady of Mercedes", Type: models.HolidayTypeReligious},
	{Date: mustDay("2024-11-06"), Name: "Constitution Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2024-12-25"), Name: "Christmas Day", Type: models.HolidayTypeReligious},

	{Date: mustDay("2025-01-01"), Name: "New Year's Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2025-01-21"), Name: "Our Lady of Altagracia", Type: models.HolidayTypeReligious},
	{Date: mustDay("2025-01-26"), Name: "Juan Pablo Duarte Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2025-02-27"), Name: "Independence Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2025-04-18"), Name: "Good Friday", Type: models.HolidayTypeReligious},
	{Date: mustDay("2025-05-01"), Name: "Labor Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2025-06-19"), Name: "Corpus Christi", Type: models.HolidayTypeReligious},
	{Date: mustDay("2025-08-16"), Name: "Restoration Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2025-09-24"), Name: "Our Lady of Mercedes", Type: models.HolidayTypeReligious},
	{Date: mustDay("2025-11-06"), Name: "Constitution Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2025-12-25"), Name: "Christmas Day", Type: models.HolidayTypeReligious},

	{Date: mustDay("2026-01-01"), Name: "New Year's Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2026-01-21"), Name: "Our Lady of Altagracia", Type: models.HolidayTypeReligious},
	{Date: mustDay("2026-01-26"), Name: "Juan Pablo Duarte Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2026-02-27"), Name: "Independence Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2026-04-03"), Name: "Good Friday", Type: models.HolidayTypeReligious},
	{Date: mustDay("2026-05-01"), Name: "Labor Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2026-06-04"), Name: "Corpus Christi", Type: models.HolidayTypeReligious},
	{Date: mustDay("2026-08-16"), Name: "Restoration Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2026-09-24"), Name: "Our Lady of Mercedes", Type: models.HolidayTypeReligious},
	{Date: mustDay("2026-11-06"), Name: "Constitution Day", Type: models.HolidayTypeNational},
	{Date: mustDay("2026-12-25"), Name: "Christmas Day", Type: models.HolidayTypeReligious},
}

// All returns the full holiday table.
func All() []models.Holiday {
	result := make([]models.Holiday, len(table))
	copy(result, table)
	return result
}

// Between returns holidays falling within [from, to] inclusive.
func Between(from, to time.Time) []models.Holiday {
	var result []models.Holiday
	for _, h := range table {
		if h.Date.Before(from) || h.Date.After(to) {
			continue
		}
		result = append(result, h)
	}
	return result
}

// On returns the holiday for a given date, if any.
func On(date time.Time) (models.Holiday, bool) {
	day := date.Format("2006-01-02")
	for _, h := range table {
		if h.Date.Format("2006-01-02") == day {
			return h, true
		}
	}
	return models.Holiday{}, false
}
