package repo

import "github.com/rogerio-castellano/inventory-ledger/internal/models"

// MaxActivities is the number of activity entries retained.
const MaxActivities = 100

// ActivityLog is a bounded, append-only audit trail. Oldest entries are evicted first.
type ActivityLog struct {
	entries []models.ActivityEntry
	now     Clock
}

// NewActivityLog creates an empty log. A nil clock uses the wall clock.
func NewActivityLog(now Clock) *ActivityLog {
	if now == nil {
		now = systemClock
	}
	return &ActivityLog{entries: []models.ActivityEntry{}, now: now}
}

// Record appends an entry stamped with the current time.
func (a *ActivityLog) Record(message string, typ models.ActivityType) models.ActivityEntry {
	if typ == "" {
		typ = models.ActivityDefault
	}
	e := models.ActivityEntry{Message: message, Type: typ, Timestamp: a.now()}
	a.entries = append(a.entries, e)
	a.trim()
	return e
}

func (a *ActivityLog) trim() {
	if over := len(a.entries) - MaxActivities; over > 0 {
		a.entries = append([]models.ActivityEntry{}, a.entries[over:]...)
	}
}

// Recent returns the n newest entries, newest first. n <= 0 returns all.
func (a *ActivityLog) Recent(n int) []models.ActivityEntry {
	return recent(a.entries, n)
}

// Entries returns the log oldest first.
func (a *ActivityLog) Entries() []models.ActivityEntry {
	out := make([]models.ActivityEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Len reports the number of retained entries.
func (a *ActivityLog) Len() int {
	return len(a.entries)
}

// Replace loads entries, keeping only the newest MaxActivities.
func (a *ActivityLog) Replace(entries []models.ActivityEntry) {
	a.entries = append([]models.ActivityEntry{}, entries...)
	a.trim()
}
