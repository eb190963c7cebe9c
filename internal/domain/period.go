package domain

import (
	"fmt"
	"strings"
)

// Period es la granularidad de los resultados presentados.
type Period string

const (
	PeriodHourly Period = "hourly"
	PeriodDaily  Period = "daily"
)

// ParsePeriod acepta "hourly"/"daily" (y sus abreviaturas "h"/"d").
// Un string vacío es PeriodHourly.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "h", "hour", "hourly":
		return PeriodHourly, nil
	case "d", "day", "daily":
		return PeriodDaily, nil
	}
	return "", fmt.Errorf("unknown period %q (want hourly|daily)", s)
}
