package hunt

import "errors"

var (
	// ErrNotFound means a referenced document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSetupRequired means a counter document is missing; the caller
	// must run the one-time counter initialization first.
	ErrSetupRequired = errors.New("setup required")

	// ErrTransient means a transaction could not commit within its retry
	// budget. No writes were applied; the whole operation is safe to
	// retry.
	ErrTransient = errors.New("transient store failure")

	// ErrExpiredUndo means a restore was attempted outside the undo
	// window. The snapshot must be discarded.
	ErrExpiredUndo = errors.New("undo window expired")
)
