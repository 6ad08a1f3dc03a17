package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decode Разбирает JSON тело запроса. Лишние поля - ошибка
func Decode[T any](body io.Reader) (T, error) {
	var payload T

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, errors.New("request body is empty")
		}
		return payload, fmt.Errorf("invalid request body: %w", err)
	}
	return payload, nil
}
