package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/wingedflyer/portal/internal/domain"
)

const renderCacheTTL = 3600 // seconds

// RenderService turns flyer markdown into sanitized HTML. Rendered
// output is cached in memcached keyed on the flyer's last edit, so
// stale entries age out instead of needing invalidation.
type RenderService struct {
	mc       *memcache.Client
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

func NewRenderService(mc *memcache.Client) *RenderService {
	return &RenderService{
		mc: mc,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

func renderCacheKey(f domain.Flyer) string {
	return fmt.Sprintf("flyer:html:%d:%d", f.ID, f.UpdatedAt.Unix())
}

// Render returns the flyer body as sanitized HTML.
func (s *RenderService) Render(ctx context.Context, f domain.Flyer) (string, error) {
	key := renderCacheKey(f)
	if s.mc != nil {
		if item, err := s.mc.Get(key); err == nil {
			return string(item.Value), nil
		}
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(f.Content), &buf); err != nil {
		return "", errors.Wrap(err, "render markdown")
	}
	html := s.policy.Sanitize(buf.String())

	if s.mc != nil {
		_ = s.mc.Set(&memcache.Item{
			Key:        key,
			Value:      []byte(html),
			Expiration: renderCacheTTL,
		})
	}

	return html, nil
}
