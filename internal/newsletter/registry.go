// Package newsletter keeps the list of subscribed email addresses.
package newsletter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/internal/kvstore"
	"github.com/gcbaptista/go-facet-engine/internal/logging"
	"github.com/gcbaptista/go-facet-engine/internal/metrics"
	"github.com/gcbaptista/go-facet-engine/internal/validation"
)

// SubmissionsKey is the storage key of the subscription list.
const SubmissionsKey = "newsletter_submissions"

// Registry deduplicates subscriptions case-insensitively.
type Registry struct {
	mu     sync.Mutex
	kv     kvstore.Store
	emails []string
}

// NewRegistry loads the stored list. Read or decode failures start from an empty list.
func NewRegistry(kv kvstore.Store) *Registry {
	r := &Registry{kv: kv, emails: []string{}}

	data, ok, err := kv.Get(SubmissionsKey)
	if err != nil {
		logging.Warn().Err(err).Str("key", SubmissionsKey).Msg("Failed to read newsletter submissions, starting empty")
		return r
	}
	if !ok {
		return r
	}
	var loaded []string
	if err := json.Unmarshal(data, &loaded); err != nil {
		logging.Warn().Err(err).Str("key", SubmissionsKey).Msg("Failed to decode newsletter submissions, starting empty")
		return r
	}
	if loaded != nil {
		r.emails = loaded
	}
	return r
}

// Subscribe adds an email after checking its format and the consent flag.
// The address is stored lower-cased; a second subscription of the same address
// returns ErrAlreadySubscribed.
func (r *Registry) Subscribe(email string, consent bool) error {
	email = strings.TrimSpace(email)
	if email == "" {
		metrics.NewsletterSubscriptions.WithLabelValues("invalid").Inc()
		return errors.NewValidationError("email", "Email is required")
	}
	if err := validation.ValidateVar(email, "email"); err != nil {
		metrics.NewsletterSubscriptions.WithLabelValues("invalid").Inc()
		return errors.NewValidationError("email", "Please enter a valid email address")
	}
	if !consent {
		metrics.NewsletterSubscriptions.WithLabelValues("invalid").Inc()
		return errors.NewValidationError("consent", "Consent is required to subscribe")
	}

	normalized := strings.ToLower(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.emails {
		if existing == normalized {
			metrics.NewsletterSubscriptions.WithLabelValues("duplicate").Inc()
			return errors.ErrAlreadySubscribed
		}
	}

	next := append(append(make([]string, 0, len(r.emails)+1), r.emails...), normalized)
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode subscriptions: %w", err)
	}
	if err := r.kv.Set(SubmissionsKey, data); err != nil {
		return fmt.Errorf("failed to persist subscriptions: %w", err)
	}
	r.emails = next
	metrics.NewsletterSubscriptions.WithLabelValues("subscribed").Inc()
	return nil
}

// IsSubscribed reports whether the address is on the list, ignoring case.
func (r *Registry) IsSubscribed(email string) bool {
	normalized := strings.ToLower(strings.TrimSpace(email))
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.emails {
		if existing == normalized {
			return true
		}
	}
	return false
}

// Count returns the number of subscribed addresses.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.emails)
}
