package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the task id from args.
//
// Tasks are always addressed by their stored id, never by display position,
// since positions shift after removals. Exactly one argument of ASCII digits
// with a value of at least 1 is accepted.
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments: %d", len(args))
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task id: %s", ref)
	}
	id, err := strconv.Atoi(ref)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", ref)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
