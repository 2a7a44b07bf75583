package spreadsheet

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonNumeric = regexp.MustCompile(`[^0-9.,\-]`)

// ParseNumber reads a numeric cell tolerant of spaces, thousands separators
// and decimal commas. Returns nil when the value cannot be interpreted.
func ParseNumber(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = nonNumeric.ReplaceAllString(s, "")
	// "1.234,56" and "1234,56" both mean a decimal comma
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &n
}

var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// excelEpoch is day zero of the 1900 date system (the off-by-two Lotus epoch)
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate reads a date cell: spreadsheet date serials as well as the common
// textual formats. Returns nil when unparseable; a bad date never fails a row.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	// Excel stores dates as day counts since the epoch
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || serial > 300000 {
			return nil
		}
		t := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
		return &t
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// statusSynonyms maps localized status labels to canonical equipment statuses
var statusSynonyms = map[string]string{
	"в эксплуатации": "in_use",
	"на складе":      "in_stock",
	"в ремонте":      "in_repair",
	"на списание":    "to_writeoff",
	"списано":        "written_off",
	"inuse":          "in_use",
	"instock":        "in_stock",
	"inrepair":       "in_repair",
	"writtenoff":     "written_off",
	"in_use":         "in_use",
	"in_stock":       "in_stock",
	"in_repair":      "in_repair",
	"to_writeoff":    "to_writeoff",
	"written_off":    "written_off",
}

// NormalizeStatus resolves a status cell; anything unknown means in_use
func NormalizeStatus(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if status, ok := statusSynonyms[key]; ok {
		return status
	}
	return "in_use"
}
