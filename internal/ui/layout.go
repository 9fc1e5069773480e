package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which side panels stack
	// under the match list.
	LayoutCompactWidth = 100

	// LayoutSidePanelWidth is the width of the status and tracking column.
	LayoutSidePanelWidth = 44

	// LayoutModalWidth is the width of forms and dialogs.
	LayoutModalWidth = 52
)

// Log display limits.
const (
	// LogTailLines is the number of log lines read per refresh.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default store snapshot interval.
	DefaultUIInterval = time.Second

	// ToastTimeout is how long a notification stays up unless dismissed.
	ToastTimeout = 8 * time.Second

	// ActionTimeout bounds a single user-triggered API call.
	ActionTimeout = 15 * time.Second
)
