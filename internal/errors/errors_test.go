package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCollectionNotFoundError(t *testing.T) {
	err := NewCollectionNotFoundError("athletes")

	expectedMsg := "collection named 'athletes' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrCollectionNotFound) {
		t.Error("Expected error to match ErrCollectionNotFound sentinel")
	}

	if errors.Is(err, ErrRecordNotFound) {
		t.Error("Error should not match ErrRecordNotFound")
	}
}

func TestCollectionAlreadyExistsError(t *testing.T) {
	err := NewCollectionAlreadyExistsError("faq")

	expectedMsg := "collection named 'faq' already exists"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrCollectionAlreadyExists) {
		t.Error("Expected error to match ErrCollectionAlreadyExists sentinel")
	}
}

func TestRecordNotFoundError(t *testing.T) {
	err := NewRecordNotFoundError("7")
	if err.Error() != "record with ID '7' not found" {
		t.Errorf("Unexpected message '%s'", err.Error())
	}

	err2 := NewRecordNotFoundError("7", "athletes")
	if err2.Error() != "record with ID '7' not found in collection 'athletes'" {
		t.Errorf("Unexpected message '%s'", err2.Error())
	}

	if !errors.Is(err, ErrRecordNotFound) || !errors.Is(err2, ErrRecordNotFound) {
		t.Error("Expected both errors to match ErrRecordNotFound sentinel")
	}
}

func TestSessionNotFoundError(t *testing.T) {
	err := NewSessionNotFoundError("abc")
	if err.Error() != "session with ID 'abc' not found" {
		t.Errorf("Unexpected message '%s'", err.Error())
	}
	if !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected error to match ErrSessionNotFound sentinel")
	}
}

func TestUnknownFacetError(t *testing.T) {
	err := NewUnknownFacetError("height", "numeric")
	if err.Error() != "unknown numeric facet 'height'" {
		t.Errorf("Unexpected message '%s'", err.Error())
	}
	if NewUnknownFacetError("height", "").Error() != "unknown facet 'height'" {
		t.Error("Expected kind-less message")
	}
	if !errors.Is(err, ErrUnknownFacet) {
		t.Error("Expected error to match ErrUnknownFacet sentinel")
	}
	if NewUnknownFacetError("trending", "sort").Error() != "unknown sort option 'trending'" {
		t.Error("Expected sort option message")
	}
	if NewUnknownFacetError("Bundesliga", "preset").Error() != "unknown preset 'Bundesliga'" {
		t.Error("Expected preset message")
	}
}

func TestRangeError(t *testing.T) {
	err := NewRangeError("age", 10, 5)
	if err.Error() != "invalid range for facet 'age': min 10 is greater than max 5" {
		t.Errorf("Unexpected message '%s'", err.Error())
	}
	if !errors.Is(err, ErrInvalidRange) {
		t.Error("Expected error to match ErrInvalidRange sentinel")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name", "cannot be empty")
	if err.Error() != "validation error for field 'name': cannot be empty" {
		t.Errorf("Unexpected message '%s'", err.Error())
	}

	err2 := NewValidationError("", "cannot be empty")
	if err2.Error() != "validation error: cannot be empty" {
		t.Errorf("Unexpected message '%s'", err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err2, ErrInvalidInput) {
		t.Error("Expected errors to match ErrInvalidInput sentinel")
	}
}

func TestErrorChaining(t *testing.T) {
	originalErr := NewCollectionNotFoundError("athletes")
	wrappedErr := fmt.Errorf("load session: %w", originalErr)

	if !errors.Is(wrappedErr, ErrCollectionNotFound) {
		t.Error("Expected wrapped error to still match ErrCollectionNotFound sentinel")
	}

	var collectionErr *CollectionNotFoundError
	if !errors.As(wrappedErr, &collectionErr) {
		t.Fatal("Expected to be able to unwrap to CollectionNotFoundError")
	}
	if collectionErr.CollectionName != "athletes" {
		t.Errorf("Expected collection name 'athletes', got '%s'", collectionErr.CollectionName)
	}
}
