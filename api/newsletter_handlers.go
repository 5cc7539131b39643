package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-facet-engine/internal/errors"
)

// SubscribeRequest is the body of a newsletter subscription.
type SubscribeRequest struct {
	Email   string `json:"email"`
	Consent bool   `json:"consent"`
}

// SubscribeHandler registers an email for the newsletter.
func (api *API) SubscribeHandler(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if err := api.newsletter.Subscribe(req.Email, req.Consent); err != nil {
		var validationErr *internalErrors.ValidationError
		if errors.As(err, &validationErr) {
			result := &ValidationResult{Valid: true}
			result.AddError(validationErr.Field, validationErr.Message)
			SendValidationError(c, result)
			return
		}
		SendEngineError(c, "subscribe", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully subscribed to newsletter!"})
}

// SubscriptionCountHandler returns how many emails are subscribed.
func (api *API) SubscriptionCountHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": api.newsletter.Count()})
}
