package gesture

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rps_arena/internal/domain"
)

func classifierStub(t *testing.T, gesture string, confidence float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("неожиданный путь %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"gesture":    gesture,
			"confidence": confidence,
		})
	}))
}

func TestHTTPDetector_Detect(t *testing.T) {
	srv := classifierStub(t, "rock", 0.92)
	defer srv.Close()

	d := NewHTTPDetector(srv.URL, 0.6)
	move, conf, err := d.Detect(context.Background(), []byte("frame"))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if move != domain.MoveRock || conf != 0.92 {
		t.Fatalf("move=%s conf=%v", move, conf)
	}
}

func TestHTTPDetector_LowConfidenceIsNone(t *testing.T) {
	srv := classifierStub(t, "paper", 0.3)
	defer srv.Close()

	d := NewHTTPDetector(srv.URL, 0.6)
	move, conf, err := d.Detect(context.Background(), []byte("frame"))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if move != domain.MoveNone {
		t.Fatalf("слабое распознавание должно давать none, got=%s", move)
	}
	if conf != 0.3 {
		t.Fatalf("уверенность отдается как есть, got=%v", conf)
	}
}

func TestHTTPDetector_UnknownGestureIsNone(t *testing.T) {
	srv := classifierStub(t, "lizard", 0.99)
	defer srv.Close()

	d := NewHTTPDetector(srv.URL, 0.6)
	move, _, err := d.Detect(context.Background(), []byte("frame"))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if move != domain.MoveNone {
		t.Fatalf("неизвестный жест должен давать none, got=%s", move)
	}
}

func TestHTTPDetector_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewHTTPDetector(srv.URL, 0.6)
	if _, _, err := d.Detect(context.Background(), []byte("frame")); err == nil {
		t.Fatal("ожидалась ошибка при статусе 500")
	}
}
