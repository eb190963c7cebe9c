package runner

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseStrategies lee una lista "min:max[,min:max...]". Cada entrada puede
// llevar nombre: "tight=1800:2200".
func ParseStrategies(s string) ([]Strategy, error) {
	var out []Strategy
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name := fmt.Sprintf("s%d", i+1)
		if k, v, ok := strings.Cut(part, "="); ok {
			name, part = strings.TrimSpace(k), strings.TrimSpace(v)
		}

		lo, hi, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("strategy %q: want min:max", part)
		}
		min, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		if err != nil {
			return nil, fmt.Errorf("strategy %q: min: %w", part, err)
		}
		max, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err != nil {
			return nil, fmt.Errorf("strategy %q: max: %w", part, err)
		}
		out = append(out, Strategy{Name: name, MinPrice: min, MaxPrice: max})
	}
	return out, nil
}
