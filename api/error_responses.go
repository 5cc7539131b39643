package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-facet-engine/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrorCodeCollectionNotFound ErrorCode = "COLLECTION_NOT_FOUND"
	ErrorCodeRecordNotFound     ErrorCode = "RECORD_NOT_FOUND"
	ErrorCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrorCodeCollectionExists   ErrorCode = "COLLECTION_ALREADY_EXISTS"
	ErrorCodeUnknownFacet       ErrorCode = "UNKNOWN_FACET"
	ErrorCodeInvalidRange       ErrorCode = "INVALID_RANGE"
	ErrorCodeVotesDisabled      ErrorCode = "VOTES_DISABLED"
	ErrorCodeAlreadySubscribed  ErrorCode = "ALREADY_SUBSCRIBED"
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON        ErrorCode = "INVALID_JSON"
	ErrorCodeRequestTooLarge    ErrorCode = "REQUEST_TOO_LARGE"

	// Server Error Codes (5xx)
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
	ErrorCodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	c.JSON(statusCode, newAPIError(c, code, message, details...))
}

func newAPIError(c *gin.Context, code ErrorCode, message string, details ...ErrorDetail) *APIError {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}
	return errorResponse
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendCollectionNotFoundError sends a standardized collection not found error
func SendCollectionNotFoundError(c *gin.Context, collectionName string) {
	SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound,
		"Collection '"+collectionName+"' not found")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendPersistenceError sends a standardized persistence error
func SendPersistenceError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodePersistenceFailed,
		"Failed to persist "+operation+": "+err.Error())
}

// classifyError maps an engine error to its status code and API error code.
func classifyError(err error) (int, ErrorCode) {
	switch {
	case errors.Is(err, internalErrors.ErrCollectionNotFound):
		return http.StatusNotFound, ErrorCodeCollectionNotFound
	case errors.Is(err, internalErrors.ErrRecordNotFound):
		return http.StatusNotFound, ErrorCodeRecordNotFound
	case errors.Is(err, internalErrors.ErrSessionNotFound):
		return http.StatusNotFound, ErrorCodeSessionNotFound
	case errors.Is(err, internalErrors.ErrCollectionAlreadyExists):
		return http.StatusConflict, ErrorCodeCollectionExists
	case errors.Is(err, internalErrors.ErrAlreadySubscribed):
		return http.StatusConflict, ErrorCodeAlreadySubscribed
	case errors.Is(err, internalErrors.ErrInvalidRange):
		return http.StatusUnprocessableEntity, ErrorCodeInvalidRange
	case errors.Is(err, internalErrors.ErrUnknownFacet):
		return http.StatusBadRequest, ErrorCodeUnknownFacet
	case errors.Is(err, internalErrors.ErrVotesDisabled):
		return http.StatusConflict, ErrorCodeVotesDisabled
	case errors.Is(err, internalErrors.ErrInvalidInput):
		return http.StatusBadRequest, ErrorCodeValidationFailed
	}
	return http.StatusInternalServerError, ErrorCodeInternalError
}

// SendEngineError sends the standardized response for an error returned by the engine.
func SendEngineError(c *gin.Context, operation string, err error) {
	status, code := classifyError(err)
	if code == ErrorCodeInternalError {
		SendInternalError(c, operation, err)
		return
	}
	SendError(c, status, code, err.Error(), errorDetails(err)...)
}

func errorDetails(err error) []ErrorDetail {
	var validationErr *internalErrors.ValidationError
	if errors.As(err, &validationErr) && validationErr.Field != "" {
		return []ErrorDetail{{Field: validationErr.Field, Message: validationErr.Message, Code: "VALIDATION_ERROR"}}
	}
	var facetErr *internalErrors.UnknownFacetError
	if errors.As(err, &facetErr) {
		return []ErrorDetail{{Field: facetErr.Facet, Message: err.Error(), Code: string(ErrorCodeUnknownFacet)}}
	}
	var rangeErr *internalErrors.RangeError
	if errors.As(err, &rangeErr) {
		return []ErrorDetail{{Field: rangeErr.Facet, Message: err.Error(), Code: string(ErrorCodeInvalidRange)}}
	}
	return nil
}
