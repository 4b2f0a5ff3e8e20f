package pvclient

import (
	"errors"
)

const (
	API_BASE_PATH     = "/pv/api/"
	CONTENT_TYPE_JSON = "application/json; charset=UTF-8"
	SESSION_COOKIE    = "session"
	SUGGEST_DEFAULT   = 5
	PASSWORD_MIN_LEN  = 12
	PASSWORD_MAX_LEN  = 64
)

// Endpoints relative to [API_BASE_PATH].
const (
	API_MODULES       = "modules"
	API_ELEMENTS      = "elements"
	API_WELCOME       = "welcome"
	API_USERS         = "users"
	API_USER_PASSWORD = "user/password"
)

var (
	ErrNotInitialized  = errors.New("not initialized")
	ErrAlreadyStarted  = errors.New("already started")
	ErrNotStarted      = errors.New("not started")
	ErrRequestFailed   = errors.New("request failed")
	ErrNoContent       = errors.New("no content")
	ErrInvalidPassword = errors.New("invalid password")
)
