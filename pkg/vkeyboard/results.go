package vkeyboard

import "errors"

var (
	ErrInvalidOptions = errors.New("invalid keyboard options")
)
