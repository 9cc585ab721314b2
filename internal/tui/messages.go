package tui

// StatusMsg updates the status and detail columns for a tool row.
type StatusMsg struct {
	Tool   string
	Status string
	Detail string
}

// WorkDoneMsg signals that all background work has completed.
type WorkDoneMsg struct{}

// ErrorMsg signals a fatal error; the TUI should quit.
type ErrorMsg struct {
	Err error
}
