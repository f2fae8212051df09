// Package meds implements the optimistic mutation coordinator for the
// medication domain: mutations hit local view state immediately, then
// reconcile with the server online or queue for replay offline. No user
// action is ever silently lost - every optimistic record either confirms
// a server identity or rolls back with a reported error.
package meds

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/9046balaji/Heart-sub003/internal/client/queue"
	"github.com/9046balaji/Heart-sub003/internal/client/rpc"
	"github.com/9046balaji/Heart-sub003/internal/client/storage"
	"github.com/9046balaji/Heart-sub003/internal/models"
	"github.com/9046balaji/Heart-sub003/pkg/api"
)

//go:generate go tool moq -out caller_mock.go . Caller

// Caller is the slice of the RPC client the coordinator depends on
type Caller interface {
	Call(ctx context.Context, endpoint string, opts rpc.CallOptions) (*rpc.Result, error)
}

// Domain is the offline queue domain for medications
const Domain = "medications"

const defaultEndpoint = "/api/v1/medications"

// Coordinator orchestrates optimistic medication mutations. One instance
// per domain; construct with NewCoordinator so tests get isolated state.
type Coordinator struct {
	client   Caller
	queue    *queue.Queue
	view     *View
	online   func() bool
	validate *validator.Validate
	logger   *slog.Logger
	endpoint string

	// one drain at a time; FIFO replay must not interleave
	drainMu sync.Mutex
}

// NewCoordinator creates a coordinator over the RPC client and the
// domain's offline queue. online reports the connectivity signal.
func NewCoordinator(client Caller, q *queue.Queue, online func() bool, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		client:   client,
		queue:    q,
		view:     NewView(),
		online:   online,
		validate: validator.New(),
		logger:   logger,
		endpoint: defaultEndpoint,
	}
}

// View returns the local view state
func (c *Coordinator) View() *View {
	return c.view
}

// PendingCount returns the number of queued actions awaiting replay
func (c *Coordinator) PendingCount(ctx context.Context) (int, error) {
	return c.queue.Len(ctx)
}

// Add creates a medication. The record is visible in local view state
// immediately under a temp identity; it gains its server identity once
// the server confirms.
func (c *Coordinator) Add(ctx context.Context, med models.Medication) (models.Medication, error) {
	if err := c.validate.Struct(&med); err != nil {
		return models.Medication{}, fmt.Errorf("invalid medication: %w", err)
	}
	med.ServerID = ""
	med.LocalID = tempID()
	return c.mutate(ctx, models.ActionAdd, med)
}

// Update edits an existing medication identified by med's current key.
func (c *Coordinator) Update(ctx context.Context, med models.Medication) (models.Medication, error) {
	if err := c.validate.Struct(&med); err != nil {
		return models.Medication{}, fmt.Errorf("invalid medication: %w", err)
	}
	existing, ok := c.view.Get(med.Key())
	if !ok {
		return models.Medication{}, fmt.Errorf("medication %q not found", med.Key())
	}
	// Carry the authoritative identity; callers only pick the target
	med.LocalID = existing.LocalID
	med.ServerID = existing.ServerID
	return c.mutate(ctx, models.ActionUpdate, med)
}

// Remove deletes the medication identified by key.
func (c *Coordinator) Remove(ctx context.Context, key string) error {
	med, ok := c.view.Get(key)
	if !ok {
		return fmt.Errorf("medication %q not found", key)
	}
	_, err := c.mutate(ctx, models.ActionDelete, med)
	return err
}

// mutate is the single mutation path: apply locally, then reconcile with
// the server or queue for a later drain.
func (c *Coordinator) mutate(ctx context.Context, kind models.ActionKind, med models.Medication) (models.Medication, error) {
	snapshot := c.view.snapshot()

	// The UI reflects the change in the same tick, before any I/O
	switch kind {
	case models.ActionAdd:
		c.view.add(med)
	case models.ActionUpdate:
		c.view.update(med.Key(), med)
	case models.ActionDelete:
		c.view.remove(med.Key())
	}

	// Offline, or touching a record whose add has not confirmed yet:
	// queue for replay. The dependent action has to stay behind its add
	// in FIFO order.
	if !c.isOnline() || (kind != models.ActionAdd && !med.Confirmed()) {
		if err := c.enqueue(ctx, kind, med); err != nil {
			c.view.restore(snapshot)
			return models.Medication{}, err
		}
		return med, nil
	}

	confirmed, err := c.submit(ctx, kind, med)
	if err != nil {
		if isQueueable(err) {
			// The user keeps seeing their change; it replays on the
			// next drain.
			if qerr := c.enqueue(ctx, kind, med); qerr != nil {
				c.view.restore(snapshot)
				return models.Medication{}, qerr
			}
			return med, nil
		}
		// Terminal failure: restore the pre-mutation state and report
		c.view.restore(snapshot)
		return models.Medication{}, err
	}

	c.reconcile(kind, med.Key(), confirmed)
	if kind == models.ActionDelete {
		return models.Medication{}, nil
	}
	return confirmed, nil
}

// DrainResult summarizes one queue drain
type DrainResult struct {
	Replayed  int     // actions confirmed and removed from the queue
	Dropped   int     // terminal failures dropped and reported
	Remaining int     // actions left queued for the next drain
	Errors    []error // reported errors for dropped actions
}

// Drain replays queued actions strictly FIFO. Successes are removed;
// a retryable failure stops the drain leaving the rest queued (replaying
// later actions first would break ordering); terminal failures are
// dropped and reported. After a complete drain the coordinator reloads
// authoritative state from the server.
func (c *Coordinator) Drain(ctx context.Context) (*DrainResult, error) {
	c.drainMu.Lock()
	defer c.drainMu.Unlock()

	items, err := c.queue.Pending(ctx)
	if err != nil {
		return nil, err
	}

	result := &DrainResult{}
	droppedIDs := make(map[string]bool) // localIds whose add was dropped

	for i, item := range items {
		action := item.Action

		med, err := action.Medication()
		if err != nil {
			// Undecodable payload can never replay: drop and report
			c.dropAction(ctx, item, result, fmt.Errorf("corrupt queued action: %w", err))
			continue
		}

		if action.Kind != models.ActionAdd && !med.Confirmed() {
			// The add this action depends on did not confirm. If it was
			// dropped, its dependents can never replay either.
			if droppedIDs[action.LocalID] {
				c.dropAction(ctx, item, result, fmt.Errorf("%s of %q dropped with its add", action.Kind, action.LocalID))
				continue
			}
			c.dropAction(ctx, item, result, fmt.Errorf("%s of %q has no confirmed identity", action.Kind, action.LocalID))
			continue
		}

		confirmed, err := c.submit(ctx, action.Kind, *med)
		if err != nil {
			if rpc.IsSessionExpired(err) {
				// Everything stays queued; re-authentication and a new
				// drain will pick it up.
				result.Remaining = len(items) - i
				return result, err
			}
			if isQueueable(err) {
				result.Remaining = len(items) - i
				c.logger.Info("drain interrupted, actions remain queued",
					"remaining", result.Remaining, "error", err)
				return result, nil
			}
			// Terminal: drop the action and undo its optimistic record.
			// Updates and deletes get corrected by the refetch below.
			if action.Kind == models.ActionAdd {
				c.view.remove(med.Key())
				droppedIDs[action.LocalID] = true
			}
			c.dropAction(ctx, item, result, fmt.Errorf("%s %s: %w", action.Kind, med.Key(), err))
			continue
		}

		c.reconcile(action.Kind, med.Key(), confirmed)
		if action.Kind == models.ActionAdd {
			c.resolveDependents(ctx, items[i+1:], action.LocalID, confirmed.ServerID)
		}
		if err := c.queue.Remove(ctx, item.Seq); err != nil {
			// Leaving a confirmed action queued would replay it again as a
			// duplicate; stop and surface the failure instead.
			result.Remaining = len(items) - i
			return result, fmt.Errorf("failed to remove replayed action %d: %w", item.Seq, err)
		}
		result.Replayed++
	}

	// Catch up on out-of-band changes (e.g. another device) once the
	// queue is fully drained
	if err := c.Refetch(ctx); err != nil {
		c.logger.Warn("post-drain refetch failed", "error", err)
	}

	return result, nil
}

// resolveDependents rewrites still-queued actions targeting localID with
// the server identity its add just confirmed. The rewrite is persisted so
// a drain interrupted between an add and its dependents does not strand
// the dependents without an identity on the next drain.
func (c *Coordinator) resolveDependents(ctx context.Context, rest []storage.QueuedItem, localID, serverID string) {
	for j := range rest {
		dep := rest[j].Action
		if dep.LocalID != localID {
			continue
		}
		med, err := dep.Medication()
		if err != nil {
			continue // dropped as corrupt when its turn comes
		}
		med.ServerID = serverID
		med.LocalID = ""
		payload, err := json.Marshal(med)
		if err != nil {
			continue
		}
		dep.LocalID = serverID
		dep.Payload = payload
		if err := c.queue.Update(ctx, rest[j].Seq, dep); err != nil {
			// The in-memory rewrite still covers this drain; only a later
			// drain would see the stale identity.
			c.logger.Warn("failed to persist resolved identity", "seq", rest[j].Seq, "error", err)
		}
	}
}

// Watch drains the queue on every offline-to-online transition. Blocks
// until ctx is canceled; run it in a goroutine.
func (c *Coordinator) Watch(ctx context.Context, transitions <-chan bool) {
	for {
		select {
		case <-ctx.Done():
			return
		case online, ok := <-transitions:
			if !ok {
				return
			}
			if !online {
				continue
			}
			if _, err := c.Drain(ctx); err != nil {
				c.logger.Warn("queue drain failed", "error", err)
			}
		}
	}
}

// Refetch replaces local view state with the authoritative server list.
// Last fetch wins: a concurrent change from another device overwrites
// local optimistic state that already drained.
func (c *Coordinator) Refetch(ctx context.Context) error {
	res, err := c.client.Call(ctx, c.endpoint, rpc.CallOptions{Method: http.MethodGet})
	if err != nil {
		return err
	}

	var resp api.MedicationListResponse
	if err := res.Decode(&resp); err != nil {
		return err
	}

	records := make([]models.Medication, 0, len(resp.Medications))
	for _, m := range resp.Medications {
		records = append(records, medFromAPI(m))
	}
	c.view.reset(records)
	return nil
}

// Load primes local view state on startup: authoritative fetch when
// online, then pending queued mutations reapplied on top so unsynced
// changes stay visible.
func (c *Coordinator) Load(ctx context.Context) error {
	if c.isOnline() {
		if err := c.Refetch(ctx); err != nil && !rpc.IsOffline(err) {
			return err
		}
	}

	items, err := c.queue.Pending(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		med, err := item.Action.Medication()
		if err != nil {
			c.logger.Warn("skipping corrupt queued action", "seq", item.Seq, "error", err)
			continue
		}
		switch item.Action.Kind {
		case models.ActionAdd:
			// Skip records already visible so reloading a live view does
			// not duplicate them
			if _, ok := c.view.Get(med.Key()); !ok {
				c.view.add(*med)
			}
		case models.ActionUpdate:
			c.view.update(med.Key(), *med)
		case models.ActionDelete:
			c.view.remove(med.Key())
		}
	}
	return nil
}

// submit performs the server call for one mutation and returns the
// confirmed record (zero for deletes).
func (c *Coordinator) submit(ctx context.Context, kind models.ActionKind, med models.Medication) (models.Medication, error) {
	reqBody := api.MedicationRequest{
		Name:     med.Name,
		Dose:     med.Dose,
		Schedule: med.Schedule,
		Notes:    med.Notes,
	}

	switch kind {
	case models.ActionAdd:
		res, err := c.client.Call(ctx, c.endpoint, rpc.CallOptions{
			Method: http.MethodPost,
			Body:   reqBody,
		})
		if err != nil {
			return models.Medication{}, err
		}
		var resp api.MedicationResponse
		if err := res.Decode(&resp); err != nil {
			return models.Medication{}, err
		}
		return medFromAPI(resp.Medication), nil

	case models.ActionUpdate:
		res, err := c.client.Call(ctx, c.endpoint+"/"+med.ServerID, rpc.CallOptions{
			Method: http.MethodPut,
			Body:   reqBody,
		})
		if err != nil {
			return models.Medication{}, err
		}
		var resp api.MedicationResponse
		if err := res.Decode(&resp); err != nil {
			return models.Medication{}, err
		}
		return medFromAPI(resp.Medication), nil

	case models.ActionDelete:
		_, err := c.client.Call(ctx, c.endpoint+"/"+med.ServerID, rpc.CallOptions{
			Method: http.MethodDelete,
		})
		if err != nil {
			return models.Medication{}, err
		}
		return models.Medication{}, nil

	default:
		return models.Medication{}, fmt.Errorf("unknown action kind %q", kind)
	}
}

// reconcile swaps the optimistic identity for the server identity in a
// single view replacement - observers never see a remove followed by an
// add.
func (c *Coordinator) reconcile(kind models.ActionKind, key string, confirmed models.Medication) {
	switch kind {
	case models.ActionAdd, models.ActionUpdate:
		if !c.view.confirm(key, confirmed) {
			// Record vanished from the view (e.g. view was reset while
			// the call was in flight); reinsert the confirmed form
			c.view.add(confirmed)
		}
	case models.ActionDelete:
		// Already removed optimistically
	}
}

// enqueue persists a pending action for a later drain
func (c *Coordinator) enqueue(ctx context.Context, kind models.ActionKind, med models.Medication) error {
	action, err := models.NewQueuedAction(kind, &med)
	if err != nil {
		return fmt.Errorf("failed to build queued action: %w", err)
	}
	if err := c.queue.Append(ctx, action); err != nil {
		return err
	}
	c.logger.Debug("action queued for replay", "kind", kind, "key", med.Key())
	return nil
}

// dropAction removes a terminally failed action and records the report
func (c *Coordinator) dropAction(ctx context.Context, item storage.QueuedItem, result *DrainResult, cause error) {
	result.Dropped++
	result.Errors = append(result.Errors, cause)
	c.logger.Warn("queued action dropped", "seq", item.Seq, "error", cause)
	if err := c.queue.Remove(ctx, item.Seq); err != nil {
		c.logger.Warn("failed to remove dropped action", "seq", item.Seq, "error", err)
	}
}

func (c *Coordinator) isOnline() bool {
	return c.online == nil || c.online()
}

// isQueueable reports whether a failed mutation should be kept for a
// later replay rather than rolled back: offline short-circuits and
// transient failures that survived the client's retry budget.
func isQueueable(err error) bool {
	return rpc.IsOffline(err) || rpc.IsRetryable(err)
}

// medFromAPI converts a wire medication to the local model
func medFromAPI(m api.Medication) models.Medication {
	return models.Medication{
		ServerID: m.ID,
		Name:     m.Name,
		Dose:     m.Dose,
		Schedule: m.Schedule,
		Notes:    m.Notes,
	}
}

// tempSeq guarantees tempID uniqueness within a process even when two
// mutations land on the same millisecond
var tempSeq atomic.Int64

// tempID synthesizes a unique local identity, e.g. "temp-1700000000000"
func tempID() string {
	now := time.Now().UnixMilli()
	for {
		last := tempSeq.Load()
		if now <= last {
			now = last + 1
		}
		if tempSeq.CompareAndSwap(last, now) {
			return fmt.Sprintf("temp-%d", now)
		}
	}
}
