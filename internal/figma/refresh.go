package figma

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RefreshPreviews re-renders the preview of every file key concurrently, at
// most limit requests at a time. Files that fail are left out of the result;
// one bad file never aborts the others.
func (c *Client) RefreshPreviews(ctx context.Context, token string, fileKeys []string, limit int) map[string]string {
	if limit <= 0 {
		limit = 4
	}

	var mu sync.Mutex
	out := make(map[string]string, len(fileKeys))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for _, key := range fileKeys {
		eg.Go(func() error {
			p, err := c.FetchPreview(egCtx, token, key)
			if err != nil {
				c.logger.Debug("preview refresh failed", zap.String("fileKey", key), zap.Error(err))
				return nil
			}
			mu.Lock()
			out[key] = p.ImageURL
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return out
}
