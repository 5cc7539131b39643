// Package api provides the HTTP surface of the facet engine.
package api

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/validation"
	"github.com/gcbaptista/go-facet-engine/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateCollectionName validates a collection name parameter
func ValidateCollectionName(name string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if name == "" {
		result.AddError("collectionName", "Collection name is required")
		return result
	}

	if strings.TrimSpace(name) != name {
		result.AddError("collectionName", "Collection name cannot have leading or trailing whitespace")
		return result
	}

	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		result.AddError("collectionName", "Collection name cannot contain path separators")
	}

	return result
}

// ValidateRecordID validates a record ID
func ValidateRecordID(recordID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if recordID == "" {
		result.AddError("recordID", "Record ID is required")
		return result
	}

	if strings.TrimSpace(recordID) != recordID {
		result.AddError("recordID", "Record ID cannot have leading or trailing whitespace")
	}

	return result
}

// ValidateCollectionSettings validates collection settings for creation
func ValidateCollectionSettings(settings *config.CollectionSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Collection settings are required")
		return result
	}

	if settings.Name == "" {
		result.AddError("name", "Collection name is required")
	} else if nameResult := ValidateCollectionName(settings.Name); nameResult.HasErrors() {
		for _, err := range nameResult.Errors {
			result.AddError("name", err.Message)
		}
	}

	// Apply defaults before validation
	settings.ApplyDefaults()

	// Validate field names and references
	if conflicts := settings.ValidateFieldNames(); len(conflicts) > 0 {
		for _, conflict := range conflicts {
			result.AddError("field_validation", conflict)
		}
	}

	return result
}

// ValidateRecords validates a slice of records for addition
func ValidateRecords(records []model.Record) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(records) == 0 {
		result.AddError("records", "No records provided")
		return result
	}

	seen := make(map[string]int, len(records))
	for i, record := range records {
		field := fmt.Sprintf("records[%d].%s", i, model.RecordIDField)
		if _, exists := record[model.RecordIDField]; !exists {
			result.AddError(field, "Record must have an 'id' field")
			continue
		}

		id, ok := record.GetRecordID()
		if !ok {
			result.AddError(field, "Record ID must be a non-empty string or a number")
			continue
		}

		if first, dup := seen[id]; dup {
			result.AddError(field, fmt.Sprintf("Record ID '%s' duplicates records[%d]", id, first))
			continue
		}
		seen[id] = i
	}

	return result
}

// MaxPage bounds the page parameter so the record offset cannot overflow.
const MaxPage = 1_000_000

// ValidatePagination validates pagination parameters
func ValidatePagination(page, pageSize int) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	// Set defaults
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	// Validate limits
	if pageSize > 100 {
		pageSize = 100 // Maximum page size
	}
	if page > MaxPage {
		result.AddError("page", fmt.Sprintf("page must be at most %d", MaxPage))
	}

	return page, pageSize, result
}

// ValidateRequest binds the JSON body into target and runs its struct validation tags
func ValidateRequest(c *gin.Context, target interface{}) *ValidationResult {
	result := ValidateJSONBinding(c, target)
	if result.HasErrors() {
		return result
	}

	if err := validation.ValidateStruct(target); err != nil {
		var reqErr *validation.RequestValidationError
		if stdErrors.As(err, &reqErr) {
			for _, fe := range reqErr.Fields {
				result.AddError(fe.Field, fe.Message)
			}
		} else {
			result.AddError("request_body", err.Error())
		}
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}
