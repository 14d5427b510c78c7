package apperrors

import "errors"

var (
	ErrDomainValidation    = errors.New("value outside allowed domain")
	ErrMalformedTimestamp  = errors.New("malformed timestamp")
	ErrNoDataForStatistic  = errors.New("no data for statistic")
	ErrOptionalFieldAbsent = errors.New("optional field absent")
	ErrInvalidSource       = errors.New("invalid record source")
	ErrNotFound            = errors.New("not found")
)
