package services

import "errors"

var (
	ErrFoodNotFound       = errors.New("food not found")
	ErrMealNotFound       = errors.New("meal not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrGoogleAuthDisabled = errors.New("google sign-in is disabled")
)
