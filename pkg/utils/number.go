package utils

import (
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseNumber converte texto numérico, aceitando separador de milhar com vírgula
func ParseNumber(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	number, err := strconv.ParseFloat(value, 64)
	if err == nil {
		return number, !math.IsNaN(number) && !math.IsInf(number, 0)
	}

	if strings.Contains(value, ",") {
		number, err = strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
		if err == nil {
			return number, !math.IsNaN(number) && !math.IsInf(number, 0)
		}
	}

	return 0, false
}
