package report

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown report format")
	ErrNilReport     = errors.New("report is nil")
)
