package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/analytics"
	"github.com/trezcool/masomo-dashboard/core/audit"
)

// Source is the backend data the admin dashboard is built from.
type Source interface {
	AdminDashboard(ctx context.Context) (analytics.AdminDashboard, error)
	AuditLogs(ctx context.Context, limit int) ([]audit.Log, error)
}

// Snapshot is what one load of the admin dashboard produced.
// RecentActivity is nil when the audit logs could not be fetched.
type Snapshot struct {
	Stats          analytics.AdminDashboard
	RecentActivity []audit.Log
	LoadedAt       time.Time
}

// HasActivity reports whether the secondary fetch succeeded.
func (s Snapshot) HasActivity() bool { return s.RecentActivity != nil }

// Result is one emission of Watch.
type Result struct {
	Snapshot Snapshot
	Err      error
}

type Loader struct {
	src    Source
	logger core.Logger
	now    func() time.Time
}

func NewLoader(src Source, logger core.Logger) *Loader {
	return &Loader{src: src, logger: core.OrNop(logger), now: time.Now}
}

// Load fetches the admin stats and the recent activity concurrently and waits for both.
// Only a failure to fetch the stats fails the load.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	var (
		stats    analytics.AdminDashboard
		activity []audit.Log
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if stats, err = l.src.AdminDashboard(gctx); err != nil {
			return errors.Wrap(err, "loading admin stats")
		}
		return nil
	})
	g.Go(func() error {
		logs, err := l.src.AuditLogs(gctx, audit.DefaultLimit)
		if err != nil {
			l.logger.Warn(fmt.Sprintf("recent activity unavailable: %v", err), err)
			return nil
		}
		if logs == nil {
			logs = []audit.Log{}
		}
		activity = logs
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Stats: stats, RecentActivity: activity, LoadedAt: l.now()}, nil
}

// Watch emits the result of an initial load, then one more per value received on reload.
// The returned channel is closed when ctx is done or reload is closed.
func (l *Loader) Watch(ctx context.Context, reload <-chan struct{}) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		for {
			snap, err := l.Load(ctx)
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- Result{Snapshot: snap, Err: err}:
			case <-ctx.Done():
				return
			}

			select {
			case _, ok := <-reload:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
