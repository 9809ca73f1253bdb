package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EnvMaxLineSize overrides DefaultMaxLineSize.
const EnvMaxLineSize = "AIDE_MAX_INPUT_SIZE"

// DefaultMaxLineSize bounds one line of chat input, in bytes.
const DefaultMaxLineSize = 4096

var (
	ErrLineTooLong = errors.New("line too long")
	ErrInvalidUTF8 = errors.New("line is not valid UTF-8")
)

// InputError is a line refused before it is matched against the choices.
type InputError struct {
	Err   error
	Size  int
	Limit int
}

func (e *InputError) Error() string {
	if errors.Is(e.Err, ErrLineTooLong) {
		return fmt.Sprintf("%v: %d bytes, limit %d", e.Err, e.Size, e.Limit)
	}
	return e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Hint explains the refusal to the user.
func (e *InputError) Hint() string {
	if errors.Is(e.Err, ErrLineTooLong) {
		return fmt.Sprintf("That answer is too long (%d bytes, at most %d).", e.Size, e.Limit)
	}
	return "That answer contains unreadable characters."
}

// MaxLineSize returns the line limit, honoring EnvMaxLineSize.
func MaxLineSize() int {
	if val := os.Getenv(EnvMaxLineSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxLineSize
}

// CleanLine checks one line of chat input (a choice number, a label or a JSON
// command) and prepares it for matching. Line breaks and tabs become spaces,
// other control characters such as ANSI escapes are dropped, and the result
// is trimmed. Oversized or non UTF-8 lines fail with an *InputError.
func CleanLine(line string) (string, error) {
	if limit := MaxLineSize(); len(line) > limit {
		return "", &InputError{Err: ErrLineTooLong, Size: len(line), Limit: limit}
	}
	if !utf8.ValidString(line) {
		return "", &InputError{Err: ErrInvalidUTF8, Size: len(line)}
	}
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, line)), nil
}
