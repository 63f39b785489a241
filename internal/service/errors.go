package service

import "errors"

// Business-rule errors surfaced to the API layer.
var (
	ErrDailyCapExceeded = errors.New("total hours for the day would exceed 24")
	ErrDuplicateEntry   = errors.New("an entry already exists for this member, project and date")
	ErrDuplicateAbsence = errors.New("an absence already exists for this member and date")
	ErrMonthLocked      = errors.New("the month containing this date is already approved")
	ErrAlreadySubmitted = errors.New("the month is already submitted or approved")
)
