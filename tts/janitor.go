package tts

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// maxPruneInterval caps how long the janitor sleeps between sweeps.
const maxPruneInterval = 10 * time.Minute

// Janitor removes generated audio files older than a TTL. Without it the
// output directory grows without bound, since every synthesis writes a new
// file that is never touched again.
type Janitor struct {
	dir      string
	ttl      time.Duration
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewJanitor(dir string, ttl time.Duration) *Janitor {
	interval := ttl
	if interval > maxPruneInterval {
		interval = maxPruneInterval
	}
	return &Janitor{
		dir:      dir,
		ttl:      ttl,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (j *Janitor) Start() {
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-j.stop:
				return
			case <-ticker.C:
				if err := j.Prune(); err != nil {
					log.Printf("audio janitor: %v", err)
				}
			}
		}
	}()
}

// Stop ends the sweep loop. It does not wait for an in-flight sweep and is
// safe to call more than once.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

// Prune deletes every regular file in the output directory whose modification
// time is older than the TTL. Files served mid-delete simply 404 on the next
// request, which is acceptable for expired artifacts.
func (j *Janitor) Prune() error {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return fmt.Errorf("read output dir: %w", err)
	}
	cutoff := time.Now().Add(-j.ttl)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(j.dir, e.Name())
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Printf("audio janitor: remove %s: %v", e.Name(), err)
			}
		}
	}
	return nil
}
