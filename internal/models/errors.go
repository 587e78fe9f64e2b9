package models

import "errors"

// Identity and authentication errors
var (
	ErrInvalidEmail       = errors.New("users must have an email address")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("invalid or missing token")
)

// Entity store errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidRealEstates  = errors.New("one or more real estates not found")
	ErrInvalidFilterValues = errors.New("real_estates filter must be a comma-separated list of ids")
)
