package player

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultCacheSize bounds the number of resident clips.
const DefaultCacheSize = 10

// Key identifies a synthesized clip. Two identical sentences in a chapter
// share one entry; that mirrors how the cache is meant to behave.
type Key struct {
	Sentence string
	Voice    string
	Emotion  string
	Dialect  string
}

// ClipCache materializes synthesized sentences as MP3 files in a session
// directory. Eviction is strict FIFO by insertion order with no promotion
// on access. Entries pinned by active playback are never evicted.
type ClipCache struct {
	mu      sync.Mutex
	dir     string
	limit   int
	order   []Key
	paths   map[Key]string
	pins    map[Key]int
	seq     int
}

func NewClipCache(limit int) (*ClipCache, error) {
	if limit <= 0 {
		limit = DefaultCacheSize
	}
	dir, err := os.MkdirTemp("", "voicebook-clips-")
	if err != nil {
		return nil, fmt.Errorf("failed to create clip directory: %w", err)
	}
	return &ClipCache{
		dir:   dir,
		limit: limit,
		paths: make(map[Key]string),
		pins:  make(map[Key]int),
	}, nil
}

// Get returns the clip path for a key. Access does not affect eviction order.
func (c *ClipCache) Get(key Key) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	path, ok := c.paths[key]
	return path, ok
}

// Put materializes a clip and inserts it. A key that is already resident is
// left untouched so a late arrival cannot overwrite an entry playback has
// resolved from the cache.
func (c *ClipCache) Put(key Key, audio []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path, ok := c.paths[key]; ok {
		return path, nil
	}

	c.seq++
	path := filepath.Join(c.dir, fmt.Sprintf("clip_%06d.mp3", c.seq))
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return "", fmt.Errorf("failed to write clip: %w", err)
	}

	c.paths[key] = path
	c.order = append(c.order, key)
	c.evict()
	return path, nil
}

// Pin marks a clip as needed by "now playing" or imminent playback.
func (c *ClipCache) Pin(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pins[key]++
}

func (c *ClipCache) Unpin(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pins[key] <= 1 {
		delete(c.pins, key)
	} else {
		c.pins[key]--
	}
}

// evict drops oldest-inserted entries until the bound holds, skipping pinned
// entries. Caller holds the lock.
func (c *ClipCache) evict() {
	for len(c.paths) > c.limit {
		evicted := false
		for i, key := range c.order {
			if c.pins[key] > 0 {
				continue
			}
			c.release(key)
			c.order = append(c.order[:i], c.order[i+1:]...)
			evicted = true
			break
		}
		if !evicted {
			// everything resident is still needed by playback
			return
		}
	}
}

// Invalidate releases every held clip, pinned or not. Used on voice,
// emotion or dialect changes, after halting output.
func (c *ClipCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range c.order {
		c.release(key)
	}
	c.order = c.order[:0]
	c.pins = make(map[Key]int)
}

// release removes a clip's file and map entry. Caller holds the lock.
func (c *ClipCache) release(key Key) {
	if path, ok := c.paths[key]; ok {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).WithField("path", path).Warn("failed to remove clip file")
		}
		delete(c.paths, key)
	}
}

func (c *ClipCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.paths)
}

// Dir exposes the session directory for inspection commands.
func (c *ClipCache) Dir() string {
	return c.dir
}

// Close releases all clips and removes the session directory.
func (c *ClipCache) Close() error {
	c.Invalidate()
	return os.RemoveAll(c.dir)
}
