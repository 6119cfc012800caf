// Package common holds small helpers shared across the API.
package common

import (
	"errors"
	"fmt"

	"github.com/Carlos43525/GardenNetApi/logger"
)

func NewErrorf(format string, a ...any) error {
	return errors.New(fmt.Sprintf(format, a...))
}

func NewError(a ...any) error {
	return errors.New(fmt.Sprintln(a...))
}

// Combine merges non-nil errors into one.
func Combine(errs ...error) error {
	var msg string
	for _, err := range errs {
		if err != nil {
			if msg != "" {
				msg += ", "
			}
			msg += err.Error()
		}
	}
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
