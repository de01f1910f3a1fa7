package appstate

import "errors"

var (
	ErrApplianceNotFound = errors.New("appliance not found")
	ErrInvalidFontSize   = errors.New("invalid font size")
	ErrEmptyTone         = errors.New("tone is empty")
)
