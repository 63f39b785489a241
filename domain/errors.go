package domain

import "errors"

// Domain validation errors
var (
	ErrAggregateDeleted        = errors.New("aggregate is deleted")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
