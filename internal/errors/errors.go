package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrCollectionNotFound is returned when a collection is not found
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCollectionAlreadyExists is returned when trying to create a collection that already exists
	ErrCollectionAlreadyExists = errors.New("collection already exists")

	// ErrRecordNotFound is returned when a record is not found
	ErrRecordNotFound = errors.New("record not found")

	// ErrSessionNotFound is returned when a filter session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownFacet is returned when an operation names a facet the schema does not define
	ErrUnknownFacet = errors.New("unknown facet")

	// ErrInvalidRange is returned when a range edit has min > max
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrVotesDisabled is returned when voting is used on a collection that does not track votes
	ErrVotesDisabled = errors.New("votes disabled")

	// ErrAlreadySubscribed is returned when an email is already on the newsletter list
	ErrAlreadySubscribed = errors.New("already subscribed")
)

// CollectionNotFoundError represents a collection not found error with context
type CollectionNotFoundError struct {
	CollectionName string
}

func (e *CollectionNotFoundError) Error() string {
	return fmt.Sprintf("collection named '%s' not found", e.CollectionName)
}

func (e *CollectionNotFoundError) Is(target error) bool {
	return target == ErrCollectionNotFound
}

// NewCollectionNotFoundError creates a new CollectionNotFoundError
func NewCollectionNotFoundError(name string) *CollectionNotFoundError {
	return &CollectionNotFoundError{CollectionName: name}
}

// CollectionAlreadyExistsError represents a collection already exists error with context
type CollectionAlreadyExistsError struct {
	CollectionName string
}

func (e *CollectionAlreadyExistsError) Error() string {
	return fmt.Sprintf("collection named '%s' already exists", e.CollectionName)
}

func (e *CollectionAlreadyExistsError) Is(target error) bool {
	return target == ErrCollectionAlreadyExists
}

// NewCollectionAlreadyExistsError creates a new CollectionAlreadyExistsError
func NewCollectionAlreadyExistsError(name string) *CollectionAlreadyExistsError {
	return &CollectionAlreadyExistsError{CollectionName: name}
}

// RecordNotFoundError represents a record not found error with context
type RecordNotFoundError struct {
	RecordID       string
	CollectionName string
}

func (e *RecordNotFoundError) Error() string {
	if e.CollectionName != "" {
		return fmt.Sprintf("record with ID '%s' not found in collection '%s'", e.RecordID, e.CollectionName)
	}
	return fmt.Sprintf("record with ID '%s' not found", e.RecordID)
}

func (e *RecordNotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}

// NewRecordNotFoundError creates a new RecordNotFoundError
func NewRecordNotFoundError(recordID string, collectionName ...string) *RecordNotFoundError {
	err := &RecordNotFoundError{RecordID: recordID}
	if len(collectionName) > 0 {
		err.CollectionName = collectionName[0]
	}
	return err
}

// SessionNotFoundError represents a session not found error with context
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session with ID '%s' not found", e.SessionID)
}

func (e *SessionNotFoundError) Is(target error) bool {
	return target == ErrSessionNotFound
}

// NewSessionNotFoundError creates a new SessionNotFoundError
func NewSessionNotFoundError(sessionID string) *SessionNotFoundError {
	return &SessionNotFoundError{SessionID: sessionID}
}

// UnknownFacetError names a facet, preset or sort option that is not part of the schema
type UnknownFacetError struct {
	Facet string
	Kind  string // "categorical", "numeric", "sort", "preset"
}

func (e *UnknownFacetError) Error() string {
	switch e.Kind {
	case "sort":
		return fmt.Sprintf("unknown sort option '%s'", e.Facet)
	case "preset":
		return fmt.Sprintf("unknown preset '%s'", e.Facet)
	case "":
		return fmt.Sprintf("unknown facet '%s'", e.Facet)
	}
	return fmt.Sprintf("unknown %s facet '%s'", e.Kind, e.Facet)
}

func (e *UnknownFacetError) Is(target error) bool {
	return target == ErrUnknownFacet
}

// NewUnknownFacetError creates a new UnknownFacetError
func NewUnknownFacetError(facet, kind string) *UnknownFacetError {
	return &UnknownFacetError{Facet: facet, Kind: kind}
}

// RangeError represents a rejected range edit with context
type RangeError struct {
	Facet string
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range for facet '%s': min %g is greater than max %g", e.Facet, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// NewRangeError creates a new RangeError
func NewRangeError(facet string, min, max float64) *RangeError {
	return &RangeError{Facet: facet, Min: min, Max: max}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
