package gesture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rps_arena/internal/domain"
)

// клиент внешнего сервиса распознавания жестов
type HTTPDetector struct {
	baseURL       string
	minConfidence float64
	httpClient    *http.Client
}

// NewHTTPDetector создает клиент классификатора.
// Результаты с уверенностью ниже minConfidence считаются "none".
func NewHTTPDetector(baseURL string, minConfidence float64) *HTTPDetector {
	return &HTTPDetector{
		baseURL:       baseURL,
		minConfidence: minConfidence,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// detectionResponse представляет ответ классификатора
type detectionResponse struct {
	Gesture    string  `json:"gesture"`
	Confidence float64 `json:"confidence"`
}

func (d *HTTPDetector) Detect(ctx context.Context, frame []byte) (domain.Move, float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/detect", bytes.NewReader(frame))
	if err != nil {
		return domain.MoveNone, 0, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return domain.MoveNone, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.MoveNone, 0, fmt.Errorf("классификатор вернул статус %d: %s", resp.StatusCode, string(body))
	}

	var out detectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.MoveNone, 0, err
	}

	move := domain.Move(out.Gesture)
	// всё, что не распознано достаточно уверенно - отсутствие жеста
	if !move.Valid() || out.Confidence < d.minConfidence {
		return domain.MoveNone, out.Confidence, nil
	}
	return move, out.Confidence, nil
}
