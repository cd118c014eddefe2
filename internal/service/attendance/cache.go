package attendance

import (
	"sync"

	"github.com/clinicore/attendance-backend-go/internal/domain/attendance"
)

// approvalOverlay is the local-first view of approval state. When a
// best-effort approval write fails, the chosen state lives here until a
// retry lands it in the database; reads overlay it so the caller always
// sees the state they selected.
type approvalOverlay struct {
	mu      sync.RWMutex
	entries map[string]overlayEntry
}

type overlayEntry struct {
	Approval attendance.ApprovalState
	Sync     attendance.SyncStatus
}

func newApprovalOverlay() *approvalOverlay {
	return &approvalOverlay{entries: make(map[string]overlayEntry)}
}

func (o *approvalOverlay) Set(id string, approval attendance.ApprovalState, sync attendance.SyncStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries[id] = overlayEntry{Approval: approval, Sync: sync}
}

func (o *approvalOverlay) Get(id string) (overlayEntry, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	e, ok := o.entries[id]
	return e, ok
}

func (o *approvalOverlay) Delete(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.entries, id)
}

// Pending returns a copy of every entry still waiting on a database
// write.
func (o *approvalOverlay) Pending() map[string]attendance.ApprovalState {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make(map[string]attendance.ApprovalState, len(o.entries))
	for id, e := range o.entries {
		out[id] = e.Approval
	}
	return out
}

// Apply rewrites a record's approval and sync status from the overlay
// when an unsynced local write exists for it.
func (o *approvalOverlay) Apply(att *attendance.Attendance) {
	e, ok := o.Get(att.ID)
	if !ok {
		return
	}
	att.Approval = e.Approval
	att.SyncStatus = e.Sync
}

func (o *approvalOverlay) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.entries)
}
