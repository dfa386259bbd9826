package service

import "errors"

// Sentinel errors for the transform pipeline. Handlers translate these into
// HTTP status codes; raw provider error text never reaches the client.
var (
	// ErrUnknownType is returned for a transform type outside
	// shakespeare/meme/song. No provider call is made.
	ErrUnknownType = errors.New("invalid transformation type")

	// ErrUnknownOperation is returned for an unrecognized assist operation.
	ErrUnknownOperation = errors.New("invalid operation")

	// ErrMemeTextGeneration indicates the caption model returned something
	// that could not be parsed as caption JSON.
	ErrMemeTextGeneration = errors.New("failed to generate meme text")

	// ErrSongTaskCreate indicates the song provider accepted the request but
	// returned no task identifier.
	ErrSongTaskCreate = errors.New("failed to create song generation task")

	// ErrSongNoAudio indicates a completed song task contained no clip with
	// an audio URL.
	ErrSongNoAudio = errors.New("no audio URL found in completed task")

	// ErrSongTimeout indicates the polling attempt ceiling was reached before
	// the task hit a terminal state.
	ErrSongTimeout = errors.New("song generation timed out")
)

// IsClientError reports whether the error should map to a 400 response.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownType) || errors.Is(err, ErrUnknownOperation)
}
