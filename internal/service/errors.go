package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrEmptyResponse API ответило успехом, но без сущности
	ErrEmptyResponse = errors.New("empty response from api")
	// ErrNotConfirmed удаление без явного подтверждения пользователя
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

const defaultHint = "Please try again."

// ActionError неудавшееся действие пользователя. Состояние при этом не меняется.
type ActionError struct {
	Op     string
	Entity string
	Hint   string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// Message текст, который видит пользователь
func (e *ActionError) Message() string {
	hint := e.Hint
	if hint == "" {
		hint = defaultHint
	}
	return fmt.Sprintf("Failed to %s %s. %s", e.Op, e.Entity, hint)
}

// UserMessage сообщение для показа; для чужих ошибок общий текст
func UserMessage(err error) string {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Message()
	}
	return "Something went wrong. " + defaultHint
}

func fail(ctx context.Context, log *slog.Logger, op, entity string, err error) *ActionError {
	log.LogAttrs(ctx, slog.LevelError, "action_failed",
		slog.String("op", op),
		slog.String("entity", entity),
		slog.Any("err", err),
	)
	return &ActionError{Op: op, Entity: entity, Err: err}
}
