package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-facet-engine/internal/engine"
	"github.com/gcbaptista/go-facet-engine/model"
)

// sessionHost is implemented by collections that keep browsing sessions.
type sessionHost interface {
	CreateSession() *engine.Session
	GetSession(sessionID string) (*engine.Session, error)
	DeleteSession(sessionID string) error
}

// CategoryRequest replaces the selection of a categorical facet; an empty list clears it.
type CategoryRequest struct {
	Values []string `json:"values"`
}

// RangeRequest replaces the bounds of a numeric facet.
type RangeRequest struct {
	Min *float64 `json:"min" validate:"required"`
	Max *float64 `json:"max" validate:"required"`
}

// SearchRequest sets the free-text search term. The term is used verbatim.
type SearchRequest struct {
	Term string `json:"term"`
}

// SortRequest selects a sort option by name; empty keeps collection order.
type SortRequest struct {
	SortBy string `json:"sort_by"`
}

// SelectSuggestionRequest picks a suggestion by its position in the session's list.
type SelectSuggestionRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}

func (api *API) sessionHost(c *gin.Context) (sessionHost, bool) {
	accessor, name, ok := api.collection(c)
	if !ok {
		return nil, false
	}
	host, ok := accessor.(sessionHost)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInvalidRequest, "Collection '"+name+"' does not support sessions")
		return nil, false
	}
	return host, true
}

func (api *API) session(c *gin.Context) (*engine.Session, bool) {
	host, ok := api.sessionHost(c)
	if !ok {
		return nil, false
	}
	session, err := host.GetSession(c.Param("sessionId"))
	if err != nil {
		SendEngineError(c, "get session", err)
		return nil, false
	}
	return session, true
}

// respondView sends the session view. A rejected edit carries the unchanged view
// alongside the error so clients can re-render without a second request.
func (api *API) respondView(c *gin.Context, view engine.SessionView, err error) {
	if err == nil {
		c.JSON(http.StatusOK, view)
		return
	}
	status, code := classifyError(err)
	apiErr := newAPIError(c, code, err.Error(), errorDetails(err)...)
	c.JSON(status, gin.H{
		"error":   apiErr,
		"session": view,
	})
}

// CreateSessionHandler starts a browsing session with default criteria.
func (api *API) CreateSessionHandler(c *gin.Context) {
	host, ok := api.sessionHost(c)
	if !ok {
		return
	}
	session := host.CreateSession()
	c.JSON(http.StatusCreated, session.View(api.now()))
}

// GetSessionHandler returns the current view of a session.
func (api *API) GetSessionHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.View(api.now()))
}

// DeleteSessionHandler ends a session.
func (api *API) DeleteSessionHandler(c *gin.Context) {
	host, ok := api.sessionHost(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionId")
	if err := host.DeleteSession(sessionID); err != nil {
		SendEngineError(c, "delete session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session '" + sessionID + "' deleted"})
}

// ReplaceCriteriaHandler swaps in a whole criteria value.
func (api *API) ReplaceCriteriaHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	var criteria model.FilterCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	view, err := session.Replace(api.now(), criteria)
	api.respondView(c, view, err)
}

// SetCategoryHandler replaces the selected values of a categorical facet.
func (api *API) SetCategoryHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if result := ValidateRequest(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	view, err := session.SetCategorySelection(api.now(), c.Param("facet"), req.Values)
	api.respondView(c, view, err)
}

// SetRangeHandler replaces the bounds of a numeric facet. A min above max answers 422
// with the unchanged criteria.
func (api *API) SetRangeHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	var req RangeRequest
	if result := ValidateRequest(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	view, err := session.SetRange(api.now(), c.Param("facet"), *req.Min, *req.Max)
	api.respondView(c, view, err)
}

// SetSearchHandler sets the search term and refreshes suggestions.
func (api *API) SetSearchHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	var req SearchRequest
	if result := ValidateRequest(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	c.JSON(http.StatusOK, session.SetSearchTerm(api.now(), req.Term))
}

// SetSortHandler selects a sort option.
func (api *API) SetSortHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	var req SortRequest
	if result := ValidateRequest(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	view, err := session.SetSort(api.now(), req.SortBy)
	api.respondView(c, view, err)
}

// ApplyPresetHandler overlays a named preset on the defaults.
func (api *API) ApplyPresetHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	view, err := session.ApplyPreset(api.now(), c.Param("preset"))
	api.respondView(c, view, err)
}

// ResetSessionHandler restores the default criteria.
func (api *API) ResetSessionHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Reset(api.now()))
}

// SelectSuggestionHandler applies one of the session's current suggestions.
func (api *API) SelectSuggestionHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	var req SelectSuggestionRequest
	if result := ValidateRequest(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	view, err := session.SelectSuggestion(api.now(), *req.Index)
	api.respondView(c, view, err)
}

// BlurHandler records that the search box lost focus.
func (api *API) BlurHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Blur(api.now()))
}

// FocusHandler records that the search box regained focus.
func (api *API) FocusHandler(c *gin.Context) {
	session, ok := api.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Focus(api.now()))
}
