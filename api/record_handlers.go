package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-facet-engine/model"
)

// AddRecordsHandler handles adding/updating records in a collection.
// The body is a single record object or an array of records; each needs an "id".
func (api *API) AddRecordsHandler(c *gin.Context) {
	accessor, name, ok := api.collection(c)
	if !ok {
		return
	}

	// Read the raw JSON data first
	var rawData interface{}
	if err := c.ShouldBindJSON(&rawData); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	var records []model.Record

	// Check if the raw data is a slice (array) or a single object
	if dataSlice, isSlice := rawData.([]interface{}); isSlice {
		records = make([]model.Record, len(dataSlice))
		for i, item := range dataSlice {
			recordMap, isMap := item.(map[string]interface{})
			if !isMap {
				result := &ValidationResult{Valid: true}
				result.AddError(fmt.Sprintf("records[%d]", i), "Record is not a valid object")
				SendValidationError(c, result)
				return
			}
			records[i] = recordMap
		}
	} else if recordMap, isMap := rawData.(map[string]interface{}); isMap {
		records = []model.Record{recordMap}
	} else {
		result := &ValidationResult{Valid: true}
		result.AddError("request_body", "Expecting a record object or an array of records")
		SendValidationError(c, result)
		return
	}

	if result := ValidateRecords(records); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	added, updated, err := accessor.AddRecords(records)
	if err != nil {
		status, code := classifyError(err)
		if code == ErrorCodeInternalError {
			SendPersistenceError(c, "records of collection '"+name+"'", err)
			return
		}
		SendError(c, status, code, err.Error(), errorDetails(err)...)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d record(s) added/updated in collection '%s'", len(records), name),
		"added":   added,
		"updated": updated,
	})
}

// GetRecordsHandler lists records in collection order with pagination.
func (api *API) GetRecordsHandler(c *gin.Context) {
	accessor, _, ok := api.collection(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		result := &ValidationResult{Valid: true}
		result.AddError("page", "page must be an integer")
		SendValidationError(c, result)
		return
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize, result := ValidatePagination(page, pageSize)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	records := accessor.Records()
	total := len(records)
	start := total
	if page-1 <= total/pageSize {
		start = min((page-1)*pageSize, total)
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"records":   records[start:end],
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// DeleteAllRecordsHandler handles the request to delete all records from a collection.
func (api *API) DeleteAllRecordsHandler(c *gin.Context) {
	accessor, name, ok := api.collection(c)
	if !ok {
		return
	}
	if err := accessor.DeleteAllRecords(); err != nil {
		SendPersistenceError(c, "records of collection '"+name+"'", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All records deleted from collection '" + name + "'"})
}

// GetRecordHandler returns a single record.
func (api *API) GetRecordHandler(c *gin.Context) {
	accessor, _, ok := api.collection(c)
	if !ok {
		return
	}
	recordID := c.Param("recordId")
	if result := ValidateRecordID(recordID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	record, err := accessor.GetRecord(recordID)
	if err != nil {
		SendEngineError(c, "get record", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteRecordHandler deletes a single record.
func (api *API) DeleteRecordHandler(c *gin.Context) {
	accessor, name, ok := api.collection(c)
	if !ok {
		return
	}
	recordID := c.Param("recordId")
	if result := ValidateRecordID(recordID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := accessor.DeleteRecord(recordID); err != nil {
		SendEngineError(c, "delete record", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record '" + recordID + "' deleted from collection '" + name + "'"})
}
