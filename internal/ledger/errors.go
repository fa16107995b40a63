package ledger

import "fmt"

// StoreError represents a failure opening, reading or saving the ledger file
type StoreError struct {
	Path    string
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ledger error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ledger error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
