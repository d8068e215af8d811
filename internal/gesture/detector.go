package gesture

import (
	"context"

	"rps_arena/internal/domain"
)

// Detector классифицирует кадр с камеры в жест с уверенностью [0..1].
// Реализация живёт за пределами координатора (sidecar-сервис, модель и т.д.);
// здесь задана только граница.
type Detector interface {
	Detect(ctx context.Context, frame []byte) (domain.Move, float64, error)
}

// StaticDetector всегда возвращает один и тот же результат.
// Используется в тестах и для локального запуска без классификатора.
type StaticDetector struct {
	Move       domain.Move
	Confidence float64
}

func (d StaticDetector) Detect(_ context.Context, _ []byte) (domain.Move, float64, error) {
	return d.Move, d.Confidence, nil
}
