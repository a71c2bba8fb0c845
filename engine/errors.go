package engine

import "errors"

// Engine sentinel errors. The session boundary maps these to transport-level
// rejections; neither is retryable.
var (
	// ErrIllegalPhase is returned when an operation is attempted outside its
	// valid round phase, or with an action that is not currently allowed.
	ErrIllegalPhase = errors.New("operation not allowed in current phase")

	// ErrEmptyShoe is returned when the dealing cursor has passed the end of
	// the shoe. The engine reshuffles proactively, so this surfacing to a
	// caller indicates a bug in the reshuffle trigger.
	ErrEmptyShoe = errors.New("shoe is empty")

	// ErrInsufficientBankroll is returned when the bankroll cannot cover the
	// requested bet, double, split, or insurance.
	ErrInsufficientBankroll = errors.New("insufficient bankroll")

	// ErrIllegalAction is returned for an action the active hand cannot take.
	ErrIllegalAction = errors.New("action not allowed for this hand")
)
