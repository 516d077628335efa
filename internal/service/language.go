package service

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/wingedflyer/portal/internal/usecase"
)

// Built-in labels, used when a context defines no override. Keys are
// "<feature>.<variant>".
var defaultLabels = map[string]string{
	"participant.singular": "participant",
	"participant.plural":   "participants",
	"responsible.singular": "institution",
	"activity.singular":    "work activity",
	"activity.plural":      "work activities",
	"signal.singular":      "daily report",
	"signal.plural":        "daily reports",
	"signal.better":        "better than expected",
	"signal.as_expected":   "as expected",
	"signal.worse":         "worse than expected",
	"instruction.singular": "message",
	"instruction.plural":   "messages",
	"flyer.singular":       "flyer",
	"flyer.plural":         "flyers",
	"payment.singular":     "payment",
	"payment.plural":       "payments",
}

// LabelService resolves the vocabulary shown for portal mechanics in a
// given context. Lookups are cached; a deployment edits labels rarely.
type LabelService struct {
	languages usecase.LanguageRepository
	cache     *gocache.Cache
}

func NewLabelService(languages usecase.LanguageRepository) *LabelService {
	return &LabelService{
		languages: languages,
		cache:     gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Labels returns the full label map for a context: built-in defaults
// overlaid with the context's stored overrides.
func (s *LabelService) Labels(ctx context.Context, contextID int64) (map[string]string, error) {
	cacheKey := fmt.Sprintf("labels:%d", contextID)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(map[string]string), nil
	}

	labels := make(map[string]string, len(defaultLabels))
	for key, value := range defaultLabels {
		labels[key] = value
	}

	overrides, err := s.languages.ListByContext(ctx, contextID)
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		labels[override.FeatureKey+"."+override.Variant] = override.Value
	}

	s.cache.Set(cacheKey, labels, gocache.DefaultExpiration)
	return labels, nil
}

// Label resolves one key, falling back to the built-in default, then to
// the key itself.
func (s *LabelService) Label(ctx context.Context, contextID int64, feature, variant string) string {
	key := feature + "." + variant
	labels, err := s.Labels(ctx, contextID)
	if err != nil {
		if fallback, ok := defaultLabels[key]; ok {
			return fallback
		}
		return key
	}
	if value, ok := labels[key]; ok {
		return value
	}
	return key
}
