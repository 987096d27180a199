package service

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed: username or email already exists")
	ErrInternalServer       = errors.New("internal server error")

	// 匹配与结算相关的业务错误
	ErrAlreadyInMatch      = errors.New("player is already pairing or in a match")
	ErrMatchAlreadyStarted = errors.New("match already started, cannot cancel")
	ErrMatchNotFound       = errors.New("match not found")
	ErrPlayerNotInMatch    = errors.New("player is not a participant of this match")
	ErrNoQuestions         = errors.New("no questions available")
	ErrStoreUnavailable    = errors.New("persistent store unavailable")
	ErrInvalidReport       = errors.New("invalid result report")
	ErrRoomFinalized       = errors.New("match is already being settled")
	ErrInvalidQuestion     = errors.New("invalid question data")
)
