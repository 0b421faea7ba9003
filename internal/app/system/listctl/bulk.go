package listctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"golang.org/x/sync/errgroup"
)

// DefaultBulkConcurrency bounds concurrent deletes when no limit is given.
const DefaultBulkConcurrency = 4

// Failure is one id a bulk operation could not process.
type Failure struct {
	ID     string
	Reason string
}

// BulkResult collects the outcome of BulkDelete.
type BulkResult struct {
	Succeeded []string
	Failed    []Failure
}

// OK reports whether every id succeeded.
func (b BulkResult) OK() bool {
	return len(b.Failed) == 0
}

// Message is the single toast summarizing the operation.
func (b BulkResult) Message(noun string) string {
	if b.OK() {
		return fmt.Sprintf("Deleted %d %s.", len(b.Succeeded), noun)
	}
	parts := make([]string, 0, len(b.Failed))
	for _, f := range b.Failed {
		parts = append(parts, fmt.Sprintf("#%s (%s)", f.ID, f.Reason))
	}
	return fmt.Sprintf("Failed to delete %d of %d %s: %s",
		len(b.Failed), len(b.Failed)+len(b.Succeeded), noun, strings.Join(parts, "; "))
}

// BulkDelete calls del once per distinct id, at most limit at a time.
// Every id is attempted regardless of other failures and nothing is
// rolled back. Results keep the order of ids.
func BulkDelete(ctx context.Context, ids []string, limit int, del func(ctx context.Context, id string) error) BulkResult {
	ids = dedupe(ids)
	if limit <= 0 {
		limit = DefaultBulkConcurrency
	}

	errs := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, id := range ids {
		g.Go(func() error {
			errs[i] = del(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	var res BulkResult
	for i, id := range ids {
		if errs[i] != nil {
			res.Failed = append(res.Failed, Failure{ID: id, Reason: apiclient.Describe(errs[i])})
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	return res
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
