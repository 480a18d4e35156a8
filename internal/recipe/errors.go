package recipe

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse is returned when no structured payload can be parsed from model output.
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrInferenceFailure is returned when the inference backend errors or returns no text.
	ErrInferenceFailure = errors.New("inference failed")
	// ErrImageAnalysis marks a failure in the image analysis stage of FromImage.
	ErrImageAnalysis = errors.New("image analysis failed")
	// ErrNoFoodDetected is returned when the analysis finds no ingredients in the image.
	ErrNoFoodDetected = errors.New("no food detected in image")
	// ErrNoIngredients is returned when FromIngredients is called with an empty list.
	ErrNoIngredients = errors.New("no ingredients provided")
)

// MalformedResponseError carries the payload that failed to parse.
type MalformedResponseError struct {
	Payload string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: payload %q", ErrMalformedResponse, truncate(e.Payload, 200))
	}
	return fmt.Sprintf("%s: %v: payload %q", ErrMalformedResponse, e.Err, truncate(e.Payload, 200))
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
