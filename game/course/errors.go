package course

import "github.com/pkg/errors"

var (
	// ErrUnknownRobot is returned when an operation names a robot that does
	// not exist in the current course (never spawned, or issued before a reset).
	ErrUnknownRobot = errors.New("unknown robot")

	// ErrInvalidParameter is returned for malformed spawn or control input.
	// Nothing is mutated when it is returned.
	ErrInvalidParameter = errors.New("invalid parameter")
)

func IsUnknownRobot(err error) bool {
	return errors.Cause(err) == ErrUnknownRobot
}

func IsInvalidParameter(err error) bool {
	return errors.Cause(err) == ErrInvalidParameter
}
