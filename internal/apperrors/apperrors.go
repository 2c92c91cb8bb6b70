// Package apperrors holds the domain validation errors and their mapping to
// HTTP status codes. Anything not listed here is an unexpected fault and
// translates to a generic 500.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrNotLoggedIn       = errors.New("you are not logged in")

	ErrInvalidEmail         = errors.New("invalid email address")
	ErrWeakPassword         = errors.New("password must be between 6 and 100 characters")
	ErrInvalidResetCode     = errors.New("invalid code")
	ErrExpiredResetCode     = errors.New("expired code")
	ErrTooManyResetRequests = errors.New("too many reset requests, try again later")

	ErrReservationNotFound       = errors.New("reservation not found")
	ErrReservationNotCancellable = errors.New("reservation can no longer be cancelled")
	ErrNotReservationOwner       = errors.New("you do not have permission to cancel this reservation")

	ErrRideNotFound      = errors.New("ride not found")
	ErrNotRideOwner      = errors.New("ride does not belong to you")
	ErrRideNotInProgress = errors.New("ride is not in progress")
	ErrRideNotScheduled  = errors.New("ride has already started or finished")
	ErrNotRideParty      = errors.New("you are not part of this ride")

	ErrNoFile              = errors.New("no file uploaded")
	ErrFileTooLarge        = errors.New("file is too large, the limit is 5 MiB")
	ErrUnsupportedFileType = errors.New("unsupported file type, send a JPG or PNG image")
	ErrInvalidImage        = errors.New("could not process the image, send a valid JPG or PNG file")
)

var statuses = map[error]int{
	ErrUserNotFound:      http.StatusUnauthorized,
	ErrIncorrectPassword: http.StatusUnauthorized,
	ErrNotLoggedIn:       http.StatusUnauthorized,

	ErrInvalidEmail:         http.StatusBadRequest,
	ErrWeakPassword:         http.StatusBadRequest,
	ErrInvalidResetCode:     http.StatusBadRequest,
	ErrExpiredResetCode:     http.StatusBadRequest,
	ErrTooManyResetRequests: http.StatusTooManyRequests,

	ErrReservationNotFound:       http.StatusNotFound,
	ErrReservationNotCancellable: http.StatusConflict,
	ErrNotReservationOwner:       http.StatusForbidden,

	ErrRideNotFound:      http.StatusNotFound,
	ErrNotRideOwner:      http.StatusForbidden,
	ErrRideNotInProgress: http.StatusConflict,
	ErrRideNotScheduled:  http.StatusConflict,
	ErrNotRideParty:      http.StatusForbidden,

	ErrNoFile:              http.StatusBadRequest,
	ErrFileTooLarge:        http.StatusBadRequest,
	ErrUnsupportedFileType: http.StatusBadRequest,
	ErrInvalidImage:        http.StatusBadRequest,
}

// Translate returns the status code and client-facing message for a domain
// error. Unknown errors yield a 500 and an empty message; the caller decides
// what (if anything) to show and must not leak the cause.
func Translate(err error) (int, string) {
	for sentinel, code := range statuses {
		if errors.Is(err, sentinel) {
			return code, sentinel.Error()
		}
	}
	return http.StatusInternalServerError, ""
}

// Status returns just the HTTP status for a domain error.
func Status(err error) int {
	code, _ := Translate(err)
	return code
}
