package utils

import "errors"

// Common application errors used across services.
var (
	ErrClientNotFound      = errors.New("client not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUnknownActionCode   = errors.New("unknown action code")
	ErrInvalidSegment      = errors.New("invalid segment")
	ErrMissingOfferID      = errors.New("missing offer id")
	ErrOverlappingBrackets = errors.New("overlapping discount brackets")
	ErrSessionExpired      = errors.New("session expired or invalid")
	ErrPasswordTooShort    = errors.New("new password too short")
	ErrWrongPassword       = errors.New("current password incorrect")
)
