package enrich

import "errors"

var (
	// ErrEmptyContent indicates the note content was empty after
	// trimming. No network call is made.
	ErrEmptyContent = errors.New("enrich: note content is empty")

	// ErrNoCredential indicates no completion credential is configured.
	// No network call is made.
	ErrNoCredential = errors.New("enrich: no API credential configured")

	// ErrGenerationInFlight indicates a generation is already running
	// for this note session. Callers treat it as a no-op rather than a
	// failure; the in-flight generation is unaffected.
	ErrGenerationInFlight = errors.New("enrich: generation already in flight")
)
