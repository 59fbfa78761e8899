package service

import "errors"

// Validation failures are rejected before any mutation; the remaining errors
// surface state conflicts. Storage failures are wrapped and returned as-is.
var (
	ErrInvalidName    = errors.New("name must be 3-50 letters, digits, or spaces")
	ErrInvalidPhone   = errors.New("phone must be in format 255xxxxxxxxx")
	ErrInvalidGroupID = errors.New("group id must be 3-20 alphanumeric characters")
	ErrInvalidAmount  = errors.New("amount must be a positive integer")
	ErrSameParty      = errors.New("payer and payee must be different members")
	ErrMemberExists   = errors.New("member already exists")
	ErrMemberNotFound = errors.New("member not found")
	ErrGroupExists    = errors.New("group id already exists")
	ErrGroupNotFound  = errors.New("group not found")
	ErrNameRequired   = errors.New("group name is required")
)
