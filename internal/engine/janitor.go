package engine

import (
	"sync"
	"time"

	"github.com/gcbaptista/go-facet-engine/internal/logging"
)

// janitor periodically drops idle sessions.
type janitor struct {
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// StartSessionJanitor expires sessions idle for longer than maxIdle, checking every interval.
// Calling it again replaces the running janitor.
func (e *Engine) StartSessionJanitor(maxIdle, interval time.Duration) {
	e.Close()

	j := &janitor{stopChan: make(chan struct{})}
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				e.ExpireIdleSessions(maxIdle)
			case <-j.stopChan:
				return
			}
		}
	}()

	e.mu.Lock()
	e.janitor = j
	e.mu.Unlock()
}

func (j *janitor) stop() {
	close(j.stopChan)
	j.wg.Wait()
}

// ExpireIdleSessions removes sessions not used within maxIdle and returns how many were removed.
func (e *Engine) ExpireIdleSessions(maxIdle time.Duration) int {
	e.mu.RLock()
	instances := make([]*CollectionInstance, 0, len(e.collections))
	for _, instance := range e.collections {
		instances = append(instances, instance)
	}
	e.mu.RUnlock()

	cutoff := time.Now().Add(-maxIdle)
	cleaned := 0
	for _, instance := range instances {
		cleaned += instance.expireSessions(cutoff)
	}
	if cleaned > 0 {
		logging.Info().Int("sessions", cleaned).Msg("Expired idle sessions")
	}
	return cleaned
}
