package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/gcbaptista/go-facet-engine/config"
)

// CreateCollectionHandler handles the request to create a new collection.
// Request Body: config.CollectionSettings
func (api *API) CreateCollectionHandler(c *gin.Context) {
	var settings config.CollectionSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateCollectionSettings(&settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.CreateCollection(settings); err != nil {
		SendEngineError(c, "create collection", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Collection '" + settings.Name + "' created successfully"})
}

// ListCollectionsHandler lists all available collections.
func (api *API) ListCollectionsHandler(c *gin.Context) {
	names := api.engine.ListCollections()
	c.JSON(http.StatusOK, gin.H{"collections": names, "count": len(names)})
}

// GetCollectionHandler returns the settings and statistics of a collection.
func (api *API) GetCollectionHandler(c *gin.Context) {
	accessor, _, ok := api.collection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings": accessor.Settings(),
		"stats":    accessor.Stats(),
	})
}

// DeleteCollectionHandler handles deleting a collection.
func (api *API) DeleteCollectionHandler(c *gin.Context) {
	name := c.Param("collectionName")
	if err := api.engine.DeleteCollection(name); err != nil {
		SendEngineError(c, "delete collection", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection '" + name + "' deleted successfully"})
}

// UpdateSettingsHandler applies a partial settings update: only keys present in the body change.
func (api *API) UpdateSettingsHandler(c *gin.Context) {
	name := c.Param("collectionName")

	settings, err := api.engine.GetCollectionSettings(name)
	if err != nil {
		SendEngineError(c, "get collection settings", err)
		return
	}

	// Read raw request first to check for key presence
	rawRequest := make(map[string]json.RawMessage)
	if err := c.ShouldBindJSON(&rawRequest); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if len(rawRequest) == 0 {
		result := &ValidationResult{Valid: true}
		result.AddError("request_body", "No settings provided")
		SendValidationError(c, result)
		return
	}
	if rawName, present := rawRequest["name"]; present {
		var newName string
		if err := json.Unmarshal(rawName, &newName); err != nil || newName != name {
			result := &ValidationResult{Valid: true}
			result.AddError("name", "Collection name cannot be changed through a settings update")
			SendValidationError(c, result)
			return
		}
	}

	// Overlay the provided keys on the current settings
	current, err := json.Marshal(settings)
	if err != nil {
		SendInternalError(c, "encode settings", err)
		return
	}
	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(current, &merged); err != nil {
		SendInternalError(c, "decode settings", err)
		return
	}
	for key, value := range rawRequest {
		merged[key] = value
	}
	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		SendInternalError(c, "encode settings", err)
		return
	}

	var updated config.CollectionSettings
	if err := json.Unmarshal(mergedJSON, &updated); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if result := ValidateCollectionSettings(&updated); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.UpdateCollectionSettings(name, updated); err != nil {
		SendEngineError(c, "update collection settings", err)
		return
	}

	updatedSettings, _ := api.engine.GetCollectionSettings(name)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings for collection '" + name + "' updated successfully",
		"settings": updatedSettings,
	})
}
