package apiclient

import (
	"errors"
	"fmt"
)

// RequestError неуспешный запрос к API: сетевой сбой (Status == 0)
// или ответ со статусом вне 2xx.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

// SchemaError тело ответа разобрано, но не соответствует контракту сущности
type SchemaError struct {
	Endpoint string
	Err      error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %v", e.Endpoint, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// StatusOf возвращает HTTP-статус из ошибки API, 0 если его нет
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}
