package domain

import "errors"

var (
	// Weather lookup errors
	ErrCityNotFound      = errors.New("city not found")
	ErrProviderStatus    = errors.New("weather provider returned an error status")
	ErrNetwork           = errors.New("weather provider unreachable")
	ErrMalformedResponse = errors.New("malformed weather provider response")

	ErrInvalidArgument = errors.New("invalid argument")
)
