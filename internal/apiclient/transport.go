package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Transport выполняет JSON-запросы к одному базовому адресу API.
type Transport struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func NewTransport(baseURL string, timeout time.Duration, log *slog.Logger) *Transport {
	if log == nil {
		log = slog.Default()
	}
	return &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL адрес API без завершающего слеша
func (t *Transport) BaseURL() string { return t.baseURL }

// Request отправляет запрос и возвращает сырое JSON-тело ответа.
// Для DELETE, пустого или некорректного тела при успешном статусе
// возвращается nil без ошибки. Любая ошибка логируется до возврата.
func (t *Transport) Request(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, t.fail(ctx, method, endpoint, &RequestError{Message: err.Error(), Err: err})
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+endpoint, rdr)
	if err != nil {
		return nil, t.fail(ctx, method, endpoint, &RequestError{Message: err.Error(), Err: err})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, t.fail(ctx, method, endpoint, &RequestError{Message: err.Error(), Err: err})
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, t.fail(ctx, method, endpoint, statusError(resp.StatusCode, raw))
	}
	if method == http.MethodDelete {
		return nil, nil
	}
	if readErr != nil {
		return nil, t.fail(ctx, method, endpoint, &RequestError{Status: resp.StatusCode, Message: readErr.Error(), Err: readErr})
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if !json.Valid(raw) {
		t.log.DebugContext(ctx, "api_response_not_json",
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
		)
		return nil, nil
	}
	return json.RawMessage(raw), nil
}

func statusError(status int, raw []byte) *RequestError {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return &RequestError{Status: status, Message: body.Error}
	}
	return &RequestError{Status: status, Message: fmt.Sprintf("HTTP error, status %d", status)}
}

func (t *Transport) fail(ctx context.Context, method, endpoint string, err error) error {
	t.log.LogAttrs(ctx, slog.LevelError, "api_request_failed",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", StatusOf(err)),
		slog.Any("err", err),
	)
	return err
}
