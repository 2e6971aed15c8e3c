package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func fetchOne[T any](ctx context.Context, t *Transport, method, endpoint string, body any) (*T, error) {
	raw, err := t.Request(ctx, method, endpoint, body)
	if err != nil || raw == nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, t.fail(ctx, method, endpoint, &SchemaError{Endpoint: endpoint, Err: err})
	}
	if err := validate.Struct(v); err != nil {
		return nil, t.fail(ctx, method, endpoint, &SchemaError{Endpoint: endpoint, Err: err})
	}
	return &v, nil
}

// fetchList: тело null или пустое трактуется как пустой список
func fetchList[T any](ctx context.Context, t *Transport, endpoint string) ([]T, error) {
	raw, err := t.Request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if raw == nil {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, t.fail(ctx, http.MethodGet, endpoint, &SchemaError{Endpoint: endpoint, Err: err})
	}
	for i := range out {
		if err := validate.Struct(out[i]); err != nil {
			return nil, t.fail(ctx, http.MethodGet, endpoint, &SchemaError{Endpoint: endpoint, Err: err})
		}
	}
	return out, nil
}
