package ui

import "setrunner/internal/domain"

// Viewer displays run results in an interactive TUI
type Viewer interface {
	View(summary *domain.Summary) error
}
