package services

import "errors"

// Validation and conflict errors surfaced to the booking caller. Handlers map
// these onto HTTP status codes; anything else is treated as an internal error.
var (
	ErrInvalidDateRange    = errors.New("check-out date must be after check-in date")
	ErrPastCheckIn         = errors.New("check-in date cannot be in the past")
	ErrCapacityExceeded    = errors.New("guest count exceeds room capacity")
	ErrMissingGuestContact = errors.New("guest first name, last name, email and phone are required")
	ErrPropertyNotActive   = errors.New("property is not accepting reservations")
	ErrRoomUnavailable     = errors.New("no rooms available for the selected dates")
	ErrCannotCancel        = errors.New("reservation can no longer be cancelled")
	ErrInvalidTransition   = errors.New("reservation is not in a state that allows this action")
	ErrNotFound            = errors.New("record not found")
)
