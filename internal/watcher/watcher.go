// Package watcher runs the fetch → parse → classify → dedup → notify
// cycle and persists its outcome.
package watcher

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"annwatch/internal/board"
	"annwatch/internal/config"
	"annwatch/internal/dedup"
	"annwatch/internal/mining"
	"annwatch/internal/notify"
	"annwatch/internal/store"
)

// sendPause spaces out webhook deliveries to stay under Discord's rate
// limit.
const sendPause = time.Second

// ErrNoWebhook is returned when a run has posts to deliver but no
// webhook endpoint is configured.
var ErrNoWebhook = errors.New("DISCORD_WEBHOOK_URL is not set, cannot deliver notifications")

// Notifier delivers one alert. Satisfied by notify.Notifier.
type Notifier interface {
	Send(ctx context.Context, msg notify.Message) error
}

type Result struct {
	PostsFound        int
	NewPosts          int
	NotificationsSent int
	Baseline          bool
}

type Watcher struct {
	store    *store.Store
	cfg      *config.Config
	client   *board.Client
	notifier Notifier
	log      *zap.SugaredLogger
	pause    time.Duration
	now      func() time.Time
}

func New(st *store.Store, cfg *config.Config, client *board.Client, notifier Notifier, log *zap.SugaredLogger) *Watcher {
	return &Watcher{
		store:    st,
		cfg:      cfg,
		client:   client,
		notifier: notifier,
		log:      log,
		pause:    sendPause,
		now:      time.Now,
	}
}

// RunOnce performs a single cycle and records it in the run log. Fetch
// and parse failures abort the run before any post state is touched.
func (w *Watcher) RunOnce(ctx context.Context) (*Result, error) {
	start := w.now()

	result, runErr := w.run(ctx)

	duration := time.Since(start).Milliseconds()

	if runErr != nil {
		_ = w.store.LogRun(0, 0, 0, runErr.Error(), duration)
		return nil, runErr
	}

	_ = w.store.LogRun(result.PostsFound, result.NewPosts, result.NotificationsSent, "", duration)
	return result, nil
}

func (w *Watcher) run(ctx context.Context) (*Result, error) {
	html, err := w.client.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := board.Parse(html)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].IsMining = mining.IsMining(posts[i].Title)
	}

	seen, err := w.store.SeenIDs()
	if err != nil {
		return nil, err
	}

	fresh := dedup.Filter(posts, seen)
	result := &Result{
		PostsFound: len(posts),
		NewPosts:   len(fresh),
	}

	w.log.Infow("fetched board listing", "posts", len(posts), "new", len(fresh), "seen", seen.Len())

	if len(fresh) == 0 {
		return result, nil
	}

	// First run with no recorded state: capture the current listing as a
	// baseline instead of notifying for the whole first page, unless
	// configured otherwise.
	if seen.Len() == 0 && !w.cfg.NotifyOnFirstRun {
		if err := w.store.RecordBaseline(fresh, w.now()); err != nil {
			return nil, err
		}
		result.Baseline = true
		w.log.Infow("first run, recorded baseline without notifying", "posts", len(fresh))
		return result, nil
	}

	if w.notifier == nil {
		return nil, ErrNoWebhook
	}

	for _, p := range fresh {
		p.FoundAt = w.now()

		if err := w.notifier.Send(ctx, notify.NewPostMessage(p)); err != nil {
			// Delivery failed: leave the topic unrecorded so it is
			// retried on the next run.
			w.log.Errorw("webhook delivery failed", "topic", p.TopicID, "title", p.Title, "error", err)
			continue
		}

		if err := w.store.RecordNotified(p, p.FoundAt); err != nil {
			return result, err
		}
		result.NotificationsSent++
		w.log.Infow("notified new post", "topic", p.TopicID, "title", p.Title, "mining", p.IsMining)

		if err := sleepCtx(ctx, w.pause); err != nil {
			return result, err
		}
	}

	return result, nil
}

// Loop runs RunOnce on a fixed interval until the context is cancelled.
// Individual run failures are logged and do not stop the loop.
func (w *Watcher) Loop(ctx context.Context) error {
	w.log.Infow("watch loop started", "interval", w.cfg.Interval())

	if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
		w.log.Errorw("run failed", "error", err)
	}

	ticker := time.NewTicker(w.cfg.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watch loop stopped")
			return nil
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
				w.log.Errorw("run failed", "error", err)
			}
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
