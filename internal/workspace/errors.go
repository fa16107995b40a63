package workspace

import "fmt"

// WorkspaceError represents a failure creating an application workspace
type WorkspaceError struct {
	Message string
	Cause   error
}

func (e *WorkspaceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("workspace error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("workspace error: %s", e.Message)
}

func (e *WorkspaceError) Unwrap() error {
	return e.Cause
}
