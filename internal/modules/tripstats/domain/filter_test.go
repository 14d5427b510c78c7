package domain_test

import (
	"errors"
	"testing"

	"bikeshare/internal/modules/tripstats/domain"
	apperrors "bikeshare/internal/platform/errors"
)

func TestParseFilter(t *testing.T) {
	t.Parallel()
	cases := []struct {
		month, day string
		want       domain.Filter
	}{
		{"all", "all", domain.Filter{}},
		{"January", "all", domain.Filter{Month: 1}},
		{" june ", "SUNDAY", domain.Filter{Month: 6, Weekday: "Sunday"}},
		{"ALL", "wednesday", domain.Filter{Weekday: "Wednesday"}},
	}
	for _, tc := range cases {
		got, err := domain.ParseFilter(tc.month, tc.day)
		if err != nil {
			t.Fatalf("parse %q/%q: %v", tc.month, tc.day, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q/%q: got %+v want %+v", tc.month, tc.day, got, tc.want)
		}
	}
}

func TestParseFilterRejectsOutOfDomain(t *testing.T) {
	t.Parallel()
	for _, tc := range [][2]string{{"july", "all"}, {"december", "monday"}, {"all", "funday"}, {"", "all"}} {
		if _, err := domain.ParseFilter(tc[0], tc[1]); !errors.Is(err, apperrors.ErrDomainValidation) {
			t.Fatalf("%v: expected domain validation error, got %v", tc, err)
		}
	}
}

func TestFilterLabels(t *testing.T) {
	t.Parallel()
	f := domain.Filter{Month: 3, Weekday: "Friday"}
	if f.MonthLabel() != "march" || f.DayLabel() != "Friday" || f.IsAll() {
		t.Fatalf("unexpected labels: %s %s", f.MonthLabel(), f.DayLabel())
	}
	all := domain.Filter{}
	if all.MonthLabel() != "all" || all.DayLabel() != "all" || !all.IsAll() {
		t.Fatalf("unexpected labels for all: %s %s", all.MonthLabel(), all.DayLabel())
	}
}

func TestFilterMatches(t *testing.T) {
	t.Parallel()
	trip := domain.Trip{TimeParts: domain.TimeParts{Month: 2, Weekday: "Tuesday", Hour: 9}}
	if !(domain.Filter{}).Matches(trip) {
		t.Fatalf("all filter must match")
	}
	if !(domain.Filter{Month: 2, Weekday: "Tuesday"}).Matches(trip) {
		t.Fatalf("exact filter must match")
	}
	if (domain.Filter{Month: 2, Weekday: "Monday"}).Matches(trip) {
		t.Fatalf("day mismatch must not match")
	}
	if (domain.Filter{Month: 3}).Matches(trip) {
		t.Fatalf("month mismatch must not match")
	}
}
