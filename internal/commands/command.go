package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/pomod/internal/config"
	"github.com/sandeepkv93/pomod/internal/countdown"
)

type Type string

const (
	TypeSet   Type = "set"
	TypeMode  Type = "mode"
	TypeTheme Type = "theme"
	TypeStart Type = "start"
	TypePause Type = "pause"
	TypeReset Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CommandError) Unwrap() error { return e.Err }

type SetArgs struct {
	Minutes int
}

type ModeArgs struct {
	Mode countdown.Mode
}

type ThemeArgs struct {
	// Name is "light", "dark" or "toggle".
	Name string
}

type Command struct {
	Type  Type
	Raw   string
	Set   *SetArgs
	Mode  *ModeArgs
	Theme *ThemeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeSet:
		return parseSet(input, args)
	case TypeMode:
		return parseMode(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeStart, TypePause, TypeReset:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseSet(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "set requires a duration in minutes"}
	}
	minutes, err := config.ParseMinutes(strings.TrimSuffix(strings.ToLower(args[0]), "m"))
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error(), Err: err}
	}
	return Command{Type: TypeSet, Raw: raw, Set: &SetArgs{Minutes: minutes}}, nil
}

func parseMode(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mode requires focus or rest"}
	}
	mode, err := countdown.ParseMode(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error(), Err: err}
	}
	return Command{Type: TypeMode, Raw: raw, Mode: &ModeArgs{Mode: mode}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Name: "toggle"}}, nil
	}
	name := strings.ToLower(args[0])
	switch name {
	case "light", "dark", "toggle":
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Name: name}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme: %s", name)}
	}
}
