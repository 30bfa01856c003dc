package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/greenlyst/greenmoney/pkg/transport"
)

// StatusChecker looks up the processing status of one check.
type StatusChecker interface {
	CheckStatus(ctx context.Context, id string) (transport.Result, error)
}

// Status is the settled state of a watched check.
type Status struct {
	CheckID string
	State   string
	Result  transport.Result
}

const (
	StateProcessed = "processed"
	StateRejected  = "rejected"
	StateDeleted   = "deleted"
)

// ErrInvalidInterval is returned by Watch for a non-positive poll interval.
var ErrInvalidInterval = errors.New("poll interval must be positive")

// StatusWatcher polls CheckStatus for a set of checks until each one is
// processed, rejected or deleted.
type StatusWatcher struct {
	checker  StatusChecker
	interval time.Duration
	logger   *slog.Logger
}

func NewStatusWatcher(checker StatusChecker, interval time.Duration, logger *slog.Logger) *StatusWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusWatcher{
		checker:  checker,
		interval: interval,
		logger:   logger,
	}
}

// Watch calls settled once per check as it reaches a final state and
// returns when all checks have settled or ctx is done. Lookup failures are
// logged and retried on the next tick.
func (w *StatusWatcher) Watch(ctx context.Context, ids []string, settled func(Status)) error {
	if w.interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, w.interval)
	}

	w.logger.Info("status watcher started", "checks", len(ids), "interval", w.interval)

	pending := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		pending[id] = struct{}{}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx, ids, pending, settled)

	for len(pending) > 0 {
		select {
		case <-ctx.Done():
			w.logger.Info("status watcher stopping", "pending", len(pending))
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx, ids, pending, settled)
		}
	}

	w.logger.Info("all checks settled", "checks", len(ids))
	return nil
}

func (w *StatusWatcher) poll(ctx context.Context, ids []string, pending map[string]struct{}, settled func(Status)) {
	var checked, done int

	for _, id := range ids {
		if _, ok := pending[id]; !ok {
			continue
		}
		checked++

		result, err := w.checker.CheckStatus(ctx, id)
		if err != nil {
			w.logger.Error("failed to look up check status",
				"check_id", id,
				"error", err)
			continue
		}

		state := finalState(result)
		if state == "" {
			continue
		}

		delete(pending, id)
		done++
		settled(Status{CheckID: id, State: state, Result: result})
	}

	w.logger.Debug("polled check status",
		"checked", checked,
		"settled", done)
}

// finalState reads the status flags; "" means the check is still pending.
func finalState(result transport.Result) string {
	switch {
	case isTrue(result.Get("Deleted")):
		return StateDeleted
	case isTrue(result.Get("Rejected")):
		return StateRejected
	case isTrue(result.Get("Processed")):
		return StateProcessed
	}
	return ""
}

func isTrue(v string) bool {
	v = strings.TrimSpace(v)
	return strings.EqualFold(v, "true") || v == "1"
}
