package service_test

import (
	"testing"

	"bikeshare/internal/modules/tripstats/domain"
	"bikeshare/internal/modules/tripstats/service"
)

func sampleTable(t *testing.T) domain.Table {
	t.Helper()
	stamps := []string{
		"2017-01-02 08:00:00", // Monday, January
		"2017-01-03 09:00:00", // Tuesday, January
		"2017-02-06 10:00:00", // Monday, February
		"2017-06-05 11:00:00", // Monday, June
		"2017-06-10 12:00:00", // Saturday, June
		"2017-01-09 13:00:00", // Monday, January
	}
	table := domain.Table{City: domain.CityChicago}
	for i, raw := range stamps {
		ts, err := domain.ParseTimestamp(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		table.Trips = append(table.Trips, domain.Trip{
			StartTime:    ts,
			TimeParts:    domain.DeriveTimeParts(ts),
			StartStation: string(rune('A' + i)),
		})
	}
	return table
}

func TestFilterAllKeepsEverythingInOrder(t *testing.T) {
	t.Parallel()
	table := sampleTable(t)
	out := service.NewFilterEngine().Apply(table, domain.Filter{})
	if out.Len() != table.Len() {
		t.Fatalf("expected %d rows, got %d", table.Len(), out.Len())
	}
	for i := range out.Trips {
		if out.Trips[i].StartStation != table.Trips[i].StartStation {
			t.Fatalf("order changed at %d", i)
		}
	}
}

func TestFilterMonthAndDay(t *testing.T) {
	t.Parallel()
	engine := service.NewFilterEngine()
	table := sampleTable(t)

	cases := []struct {
		month, day string
		want       []string
	}{
		{"january", "all", []string{"A", "B", "F"}},
		{"all", "monday", []string{"A", "C", "D", "F"}},
		{"january", "monday", []string{"A", "F"}},
		{"june", "saturday", []string{"E"}},
		{"march", "all", nil},
	}
	for _, tc := range cases {
		filter, err := domain.ParseFilter(tc.month, tc.day)
		if err != nil {
			t.Fatalf("parse filter: %v", err)
		}
		out := engine.Apply(table, filter)
		if out.Len() != len(tc.want) {
			t.Fatalf("%s/%s: expected %d rows, got %d", tc.month, tc.day, len(tc.want), out.Len())
		}
		for i, station := range tc.want {
			if out.Trips[i].StartStation != station {
				t.Fatalf("%s/%s: row %d = %s, want %s", tc.month, tc.day, i, out.Trips[i].StartStation, station)
			}
		}
	}
	if table.Len() != 6 {
		t.Fatalf("input table mutated")
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	t.Parallel()
	engine := service.NewFilterEngine()
	table := sampleTable(t)
	months := append([]string{domain.All}, domain.FilterMonths...)
	days := append([]string{domain.All}, domain.FilterDays...)
	for _, month := range months {
		for _, day := range days {
			filter, err := domain.ParseFilter(month, day)
			if err != nil {
				t.Fatalf("parse filter: %v", err)
			}
			once := engine.Apply(table, filter)
			twice := engine.Apply(once, filter)
			if once.Len() != twice.Len() {
				t.Fatalf("%s/%s: %d vs %d rows", month, day, once.Len(), twice.Len())
			}
			for i := range once.Trips {
				if once.Trips[i].StartStation != twice.Trips[i].StartStation {
					t.Fatalf("%s/%s: row %d differs", month, day, i)
				}
			}
		}
	}
}
