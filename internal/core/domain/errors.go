package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrPostNotFound    = errors.New("post not found")
	ErrVisitorNotFound = errors.New("visitor not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrIssueNotFound   = errors.New("issue not found")
)
