package service

import "bikeshare/internal/modules/tripstats/domain"

type FilterEngine struct{}

func NewFilterEngine() *FilterEngine {
	return &FilterEngine{}
}

// Apply returns the trips of table that satisfy both constraints of filter,
// in their original order. The input table is left untouched.
func (e *FilterEngine) Apply(table domain.Table, filter domain.Filter) domain.Table {
	return table.Where(filter.Matches)
}
