package domain

import "errors"

var (
	ErrUnauthorized     = errors.New("not authorized")
	ErrMemberNotFound   = errors.New("member not found")
	ErrBatchNotFound    = errors.New("poll batch not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrNoticeNotFound   = errors.New("notice not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrVideoNotFound    = errors.New("video not found")
	ErrInvalidState     = errors.New("operation not allowed in current state")
	ErrInvalidVideoURL  = errors.New("url is not a recognizable youtube link")
)
