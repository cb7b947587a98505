package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParam indicates a tuning parameter name that does not exist.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrUnknownPreset indicates a preset or built-in scenario that does not exist.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrInvalidScenario indicates a scripted flight that cannot be executed.
	ErrInvalidScenario = errors.New("dynamo: invalid scenario")

	// ErrAudioUnavailable indicates the audio device could not be opened.
	ErrAudioUnavailable = errors.New("dynamo: audio unavailable")
)
