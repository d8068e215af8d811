package gesture

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrEmptyFrame = errors.New("пустой кадр")

// DecodeFrame декодирует base64-кадр от клиента.
// Префикс data-URL ("data:image/...;base64,") отбрасывается, если он есть.
func DecodeFrame(raw string) ([]byte, error) {
	if raw == "" {
		return nil, ErrEmptyFrame
	}

	if strings.HasPrefix(raw, "data:image") {
		if idx := strings.Index(raw, ","); idx >= 0 {
			raw = raw[idx+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFrame
	}
	return data, nil
}
