package spreadsheet

import (
	"testing"
	"time"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1234", 1234, true},
		{"1 234,56", 1234.56, true},
		{"1.234,56", 1234.56, true},
		{"49990.50", 49990.50, true},
		{"12 500 ₽", 12500, true},
		{"-3", -3, true},
		{"", 0, false},
		{"нет", 0, false},
	}
	for _, c := range cases {
		got := ParseNumber(c.in)
		if c.ok != (got != nil) {
			t.Fatalf("%q: expected ok=%v, got %v", c.in, c.ok, got)
		}
		if got != nil && *got != c.want {
			t.Fatalf("%q: expected %v, got %v", c.in, c.want, *got)
		}
	}
}

func TestParseDateTextual(t *testing.T) {
	cases := map[string]time.Time{
		"2023-05-12": time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC),
		"12.05.2023": time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC),
		"12/05/2023": time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got := ParseDate(in)
		if got == nil {
			t.Fatalf("%q: expected a date", in)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
}

func TestParseDateExcelSerial(t *testing.T) {
	// 45061 days past the 1900 epoch is 2023-05-15
	got := ParseDate("45061")
	if got == nil {
		t.Fatalf("expected a date from the serial")
	}
	if got.Year() != 2023 || got.Month() != time.May || got.Day() != 15 {
		t.Fatalf("expected 2023-05-15, got %v", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "999999999"} {
		if got := ParseDate(in); got != nil {
			t.Fatalf("%q: expected nil, got %v", in, got)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"В эксплуатации": "in_use",
		"на складе":      "in_stock",
		"В ремонте":      "in_repair",
		"written_off":    "written_off",
		"что-то ещё":     "in_use",
		"":               "in_use",
	}
	for in, want := range cases {
		if got := NormalizeStatus(in); got != want {
			t.Fatalf("%q: expected %s, got %s", in, want, got)
		}
	}
}

func TestMapRowsRussianHeaders(t *testing.T) {
	rows := [][]string{
		{"Наименование", "Категория", "Серийный номер", "Количество", "Неизвестно"},
		{"Ноутбук", "Ноутбуки", "SN-1", "3", "мусор"},
		{"", "Прочее", "", "", ""},
	}

	records, ok := MapRows(rows)
	if !ok {
		t.Fatalf("expected headers to be recognized")
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first[FieldName] != "Ноутбук" || first[FieldCategory] != "Ноутбуки" {
		t.Fatalf("unexpected first record: %v", first)
	}
	if first[FieldSerialNumber] != "SN-1" || first[FieldQuantity] != "3" {
		t.Fatalf("unexpected mapped cells: %v", first)
	}
	if _, present := first["Неизвестно"]; present {
		t.Fatalf("unknown headers must be dropped")
	}
	if records[1][FieldName] != "" {
		t.Fatalf("empty name cell must stay empty")
	}
}

func TestMapRowsNoRecognizedHeaders(t *testing.T) {
	rows := [][]string{
		{"Foo", "Bar"},
		{"1", "2"},
	}
	if _, ok := MapRows(rows); ok {
		t.Fatalf("expected failure when no header is recognized")
	}
	if _, ok := MapRows(nil); ok {
		t.Fatalf("expected failure on empty input")
	}
}
