package reference

import (
	"fmt"

	"github.com/assessment-report-engine/internal/domain"
)

// RateTable is a set of hourly attendant-care rates keyed by care level
type RateTable struct {
	Name  string
	Rates map[domain.CareLevel]float64
}

// Rate returns the hourly rate for a level, zero for unknown levels
func (t RateTable) Rate(level domain.CareLevel) float64 {
	return t.Rates[level]
}

// CurrentRates returns the hourly rates in effect for new calculations
func CurrentRates() RateTable {
	return RateTable{
		Name: "current",
		Rates: map[domain.CareLevel]float64{
			domain.CareLevel1: 14.90,
			domain.CareLevel2: 14.00,
			domain.CareLevel3: 21.11,
		},
	}
}

// HistoricalRates returns the previous rate schedule for comparative reporting
func HistoricalRates() RateTable {
	return RateTable{
		Name: "historical",
		Rates: map[domain.CareLevel]float64{
			domain.CareLevel1: 11.23,
			domain.CareLevel2: 10.25,
			domain.CareLevel3: 15.00,
		},
	}
}

// RatesByName resolves a rate table name. Empty selects the current table.
func RatesByName(name string) (RateTable, error) {
	switch name {
	case "", "current":
		return CurrentRates(), nil
	case "historical":
		return HistoricalRates(), nil
	}
	return RateTable{}, fmt.Errorf("unknown rate table %q", name)
}
