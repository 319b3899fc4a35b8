package models

import "time"

// ActivityType tags the action that produced an activity entry.
type ActivityType string

const (
	ActivityAdd      ActivityType = "add"
	ActivityEdit     ActivityType = "edit"
	ActivityDelete   ActivityType = "delete"
	ActivityRestock  ActivityType = "restock"
	ActivitySale     ActivityType = "sale"
	ActivityStockOut ActivityType = "stock-out"
	ActivitySettings ActivityType = "settings"
	ActivityImport   ActivityType = "import"
	ActivityClear    ActivityType = "clear"
	ActivityDefault  ActivityType = "default"
)

// ActivityEntry is a human-readable audit line.
type ActivityEntry struct {
	Message   string       `json:"message"`
	Type      ActivityType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
}

// Settings holds process-wide options.
type Settings struct {
	LowStockThreshold int `json:"lowStockThreshold"`
}
