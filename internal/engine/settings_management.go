package engine

import (
	"reflect"
	"slices"
	"strings"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/internal/logging"
)

// UpdateCollectionSettings replaces the settings of a collection and persists them.
// Sessions are rebound to the new schema; when the facets, sort options or presets
// changed their criteria are reset to the new defaults.
func (e *Engine) UpdateCollectionSettings(name string, newSettings config.CollectionSettings) error {
	if newSettings.Name != "" && newSettings.Name != name {
		return errors.NewValidationError("name", "cannot change collection name from '"+name+"' to '"+newSettings.Name+"' during settings update")
	}
	newSettings.Name = name
	newSettings.ApplyDefaults()
	if conflicts := newSettings.ValidateFieldNames(); len(conflicts) > 0 {
		return errors.NewValidationError("settings", strings.Join(conflicts, "; "))
	}

	instance, err := e.instance(name)
	if err != nil {
		return err
	}

	if err := e.persistCollection(name, newSettings, instance.records); err != nil {
		return err
	}

	instance.mu.Lock()
	resetSessions := requiresSessionReset(*instance.settings, newSettings)
	instance.applySettings(newSettings)
	settings, evaluator, generator := instance.settings, instance.evaluator, instance.generator
	instance.mu.Unlock()

	records := instance.records.All()
	for _, session := range instance.sessionList() {
		session.rebind(settings, evaluator, generator, records, !resetSessions)
	}

	logging.Info().Str("collection", name).Bool("sessions_reset", resetSessions).Msg("Collection settings updated")
	return nil
}

// requiresSessionReset reports whether settings changes invalidate the criteria of open sessions.
// Suggestion and search field changes keep the criteria.
func requiresSessionReset(oldSettings, newSettings config.CollectionSettings) bool {
	if !slices.Equal(oldSettings.CategoricalFacets, newSettings.CategoricalFacets) {
		return true
	}
	if !reflect.DeepEqual(oldSettings.NumericFacets, newSettings.NumericFacets) {
		return true
	}
	if !reflect.DeepEqual(oldSettings.SortOptions, newSettings.SortOptions) {
		return true
	}
	if !reflect.DeepEqual(oldSettings.Presets, newSettings.Presets) {
		return true
	}
	return oldSettings.DefaultSort != newSettings.DefaultSort
}
