package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Set   func(SetArgs) (Result, error)
	Mode  func(ModeArgs) (Result, error)
	Theme func(ThemeArgs) (Result, error)
	Start func() (Result, error)
	Pause func() (Result, error)
	Reset func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeSet:
		if handlers.Set == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Set(*cmd.Set)
	case TypeMode:
		if handlers.Mode == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Mode(*cmd.Mode)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Theme(*cmd.Theme)
	case TypeStart:
		return runNoArg(cmd.Type, handlers.Start)
	case TypePause:
		return runNoArg(cmd.Type, handlers.Pause)
	case TypeReset:
		return runNoArg(cmd.Type, handlers.Reset)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func runNoArg(t Type, fn func() (Result, error)) (Result, error) {
	if fn == nil {
		return Result{}, missing(t)
	}
	return fn()
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
