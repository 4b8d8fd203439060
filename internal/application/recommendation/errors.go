package recommendation

import "fmt"

// IntentParsingError signals that intent extraction failed. It is fatal to
// the request: no recommendation is possible without a parsed intent, so the
// pipeline propagates it instead of degrading.
type IntentParsingError struct {
	Cause error
}

func (e *IntentParsingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("intent parsing failed: %v", e.Cause)
	}
	return "intent parsing failed"
}

func (e *IntentParsingError) Unwrap() error {
	return e.Cause
}

// RAGError signals that recipe retrieval returned nothing usable. Zero
// retrieved recipes is treated as a hard failure rather than a valid empty
// result, so the adapter can tell the user to rephrase.
type RAGError struct {
	Message string
	Cause   error
}

func (e *RAGError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RAGError) Unwrap() error {
	return e.Cause
}
