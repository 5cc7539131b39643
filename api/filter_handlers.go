package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-facet-engine/model"
)

// VoteRequest is the body of a helpful vote.
type VoteRequest struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

// FilterHandler evaluates criteria against a collection without keeping any state.
// Request Body: model.FilterCriteria (an empty body matches every record)
func (api *API) FilterHandler(c *gin.Context) {
	accessor, _, ok := api.collection(c)
	if !ok {
		return
	}

	var criteria model.FilterCriteria
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&criteria); err != nil {
			SendInvalidJSONError(c, err)
			return
		}
	}

	result, err := accessor.Filter(criteria)
	if err != nil {
		SendEngineError(c, "filter", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SuggestHandler returns suggestions for the q query parameter.
func (api *API) SuggestHandler(c *gin.Context) {
	accessor, _, ok := api.collection(c)
	if !ok {
		return
	}
	term := c.Query("q")
	suggestions := accessor.Suggest(term)
	c.JSON(http.StatusOK, gin.H{
		"term":        term,
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// FacetsHandler returns the distinct categorical values and numeric domains of a collection.
func (api *API) FacetsHandler(c *gin.Context) {
	accessor, _, ok := api.collection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, accessor.Facets())
}

// VoteHandler records whether a record was helpful.
func (api *API) VoteHandler(c *gin.Context) {
	accessor, _, ok := api.collection(c)
	if !ok {
		return
	}
	recordID := c.Param("recordId")
	if result := ValidateRecordID(recordID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var req VoteRequest
	if result := ValidateRequest(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := accessor.Vote(recordID, *req.Helpful); err != nil {
		SendEngineError(c, "record vote", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record_id": recordID, "helpful": *req.Helpful})
}

// GetVotesHandler returns every recorded vote of a collection.
func (api *API) GetVotesHandler(c *gin.Context) {
	accessor, _, ok := api.collection(c)
	if !ok {
		return
	}
	votes, counts, err := accessor.Votes()
	if err != nil {
		SendEngineError(c, "get votes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"votes": votes, "counts": counts})
}
