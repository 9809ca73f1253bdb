package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/aide/pkg/domain"
)

// CommandKind is what a line of input asks for.
type CommandKind string

const (
	CommandChoose CommandKind = "choose"
	CommandReset  CommandKind = "reset"
	CommandQuit   CommandKind = "quit"
	CommandNone   CommandKind = "none"
)

// Command is a parsed line of input.
type Command struct {
	Kind   CommandKind
	Choice domain.Choice
}

// ErrUnknownChoice is returned when a line matches none of the offered choices.
var ErrUnknownChoice = errors.New("unknown choice")

type jsonCommand struct {
	Command string `json:"command"`
	Choice  int    `json:"choice"`
	Label   string `json:"label"`
}

// ParseCommand interprets a sanitized line against the choices currently offered.
// The returned Choice is always one of choices, never built from raw input.
func ParseCommand(line string, choices []domain.Choice) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: CommandNone}, nil
	}

	if strings.HasPrefix(line, "{") {
		var jc jsonCommand
		if err := json.Unmarshal([]byte(line), &jc); err != nil {
			return Command{}, fmt.Errorf("invalid JSON command: %w", err)
		}
		switch {
		case jc.Command != "":
			return parseKeyword(jc.Command, choices)
		case jc.Choice > 0:
			return byNumber(jc.Choice, choices)
		case jc.Label != "":
			return byLabel(jc.Label, choices)
		}
		return Command{}, fmt.Errorf("%w: empty JSON command", ErrUnknownChoice)
	}

	if n, err := strconv.Atoi(line); err == nil {
		return byNumber(n, choices)
	}

	// Labels win over keywords so a tree may offer a choice named "Reset".
	if cmd, err := byLabel(line, choices); err == nil {
		return cmd, nil
	}
	return parseKeyword(line, choices)
}

func parseKeyword(word string, choices []domain.Choice) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "reset", "restart":
		return Command{Kind: CommandReset}, nil
	case "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownChoice, word)
}

func byNumber(n int, choices []domain.Choice) (Command, error) {
	if n < 1 || n > len(choices) {
		return Command{}, fmt.Errorf("%w: %d is not between 1 and %d", ErrUnknownChoice, n, len(choices))
	}
	return Command{Kind: CommandChoose, Choice: choices[n-1]}, nil
}

func byLabel(label string, choices []domain.Choice) (Command, error) {
	for _, c := range choices {
		if strings.EqualFold(strings.TrimSpace(c.Label), strings.TrimSpace(label)) {
			return Command{Kind: CommandChoose, Choice: c}, nil
		}
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownChoice, label)
}
