package utils

import (
	"strings"
	"time"
)

// Layouts aceitos na coerção de datas, em ordem de prioridade.
// Formatos com barra seguem mês/dia antes de dia/mês.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2/1/2006",
	"2/1/2006 15:04:05",
	"1/2/06",
	"2006/1/2",
	"2006.01.02",
	"02.01.2006",
	"02-01-2006",
	"1-2-06",
	"2-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01",
}

// ParseDateFlexible tenta todos os layouts conhecidos e retorna a data em UTC
func ParseDateFlexible(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), true
		}
	}

	return time.Time{}, false
}

// StartOfDay trunca o horário mantendo o dia de calendário em UTC
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
