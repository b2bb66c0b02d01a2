package nutrition

import "errors"

// Domain errors for nutrition calculations

var (
	// Boundary parsing errors
	ErrUnknownUnit          = errors.New("unknown measurement unit")
	ErrUnknownSex           = errors.New("unknown sex")
	ErrUnknownActivityLevel = errors.New("unknown activity level")

	// ErrIncompleteProfile is returned when weight, height, age or sex is
	// missing and an exact energy target is required
	ErrIncompleteProfile = errors.New("nutrition profile is incomplete")
)
