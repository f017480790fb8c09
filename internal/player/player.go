package player

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"voicebook/internal/speech"
)

// DefaultPrefetch is how many upcoming sentences are fetched ahead of time.
const DefaultPrefetch = 3

type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

var (
	// ErrBusy is returned when a sentence load is already in flight.
	ErrBusy = errors.New("a sentence load is already in flight")
	// ErrNoSentence is returned for an out-of-range sentence index.
	ErrNoSentence = errors.New("no such sentence")
)

// Config is the active voice configuration of a reading session. Changing
// any field invalidates every cached clip.
type Config struct {
	Voice   string
	Emotion string
	Dialect string
}

type Option func(*Player)

func WithPrefetch(n int) Option {
	return func(p *Player) {
		if n >= 0 {
			p.prefetchN = n
		}
	}
}

// WithSentenceStart registers a callback fired when a sentence begins
// loading, for UI highlighting.
func WithSentenceStart(fn func(index int)) Option {
	return func(p *Player) { p.onSentence = fn }
}

// WithChapterDone registers a callback fired when the last sentence of the
// chapter finishes naturally.
func WithChapterDone(fn func()) Option {
	return func(p *Player) { p.onChapterDone = fn }
}

// WithPlaybackError registers a callback for failures on asynchronous
// transitions (auto-advance, reconfiguration replay), which have no caller
// to return an error to.
func WithPlaybackError(fn func(err error)) Option {
	return func(p *Player) { p.onError = fn }
}

// Player walks a chapter's sentences in order, fetching audio on demand,
// prefetching a bounded look-ahead window and auto-advancing on completion.
// The generation counter turns completions of a superseded session into
// no-ops, so a late "clip ended" event can never resurrect playback after a
// stop or configuration change.
type Player struct {
	ctx   context.Context
	synth speech.Synthesizer
	cache *ClipCache
	out   Output

	prefetchN     int
	onSentence    func(int)
	onChapterDone func()
	onError       func(error)

	mu         sync.Mutex
	sentences  []string
	cfg        Config
	state      State
	cursor     int
	generation uint64
	pinned     *Key
}

func New(ctx context.Context, synth speech.Synthesizer, cache *ClipCache, out Output, cfg Config, opts ...Option) *Player {
	p := &Player{
		ctx:       ctx,
		synth:     synth,
		cache:     cache,
		out:       out,
		cfg:       cfg,
		prefetchN: DefaultPrefetch,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetChapter replaces the sentence sequence and resets the cursor. Any
// ongoing playback is abandoned.
func (p *Player) SetChapter(sentences []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.out.Stop()
	p.unpinLocked()
	p.sentences = sentences
	p.cursor = 0
	p.state = StateIdle
}

// unpinLocked releases the pin held for the current clip. Caller holds mu.
func (p *Player) unpinLocked() {
	if p.pinned != nil {
		p.cache.Unpin(*p.pinned)
		p.pinned = nil
	}
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

func (p *Player) Settings() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Play starts playback at sentence i. Loads are serialized: a call while a
// load is in flight for this session returns ErrBusy. A fetch failure for
// the current sentence is fatal to the attempt, returns the session to Idle
// and leaves the cursor on the failed sentence.
func (p *Player) Play(i int) error {
	p.mu.Lock()
	if p.state == StateLoading {
		p.mu.Unlock()
		return ErrBusy
	}
	if i < 0 || i >= len(p.sentences) {
		p.mu.Unlock()
		return fmt.Errorf("%w: index %d of %d", ErrNoSentence, i, len(p.sentences))
	}
	if p.state == StatePlaying {
		p.generation++
		p.out.Stop()
		p.unpinLocked()
	}
	p.state = StateLoading
	p.cursor = i
	gen := p.generation
	text := p.sentences[i]
	cfg := p.cfg
	p.mu.Unlock()

	if p.onSentence != nil {
		p.onSentence(i)
	}

	path, err := p.fetch(text, cfg, gen)

	p.mu.Lock()
	if gen != p.generation {
		// superseded by stop, chapter switch or reconfiguration
		p.mu.Unlock()
		return nil
	}
	if err != nil {
		p.state = StateIdle
		p.mu.Unlock()
		return err
	}

	key := clipKey(text, cfg)
	p.cache.Pin(key)
	done, err := p.out.Play(path)
	if err != nil {
		p.cache.Unpin(key)
		p.state = StateIdle
		p.mu.Unlock()
		return err
	}
	p.pinned = &key
	p.state = StatePlaying
	p.mu.Unlock()

	go p.prefetchFrom(i+1, cfg, gen)
	go p.watch(done, gen, i, key)
	return nil
}

// Resume continues from the sentence that was last playing.
func (p *Player) Resume() error {
	return p.Play(p.Cursor())
}

// Stop halts playback and retains the cursor, so a subsequent Resume picks
// up at the same sentence.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying && p.state != StateLoading {
		return
	}
	p.generation++
	p.out.Stop()
	p.unpinLocked()
	p.state = StateStopped
}

// Pause and Unpause suspend the output device without ending the session.
func (p *Player) Pause()   { p.out.Pause() }
func (p *Player) Unpause() { p.out.Resume() }

// Configure switches voice, emotion or dialect. The whole cache is
// invalidated, output halted, and if playback was active the current
// sentence is re-issued under the new configuration.
func (p *Player) Configure(cfg Config) {
	p.mu.Lock()
	if cfg == p.cfg {
		p.mu.Unlock()
		return
	}
	active := p.state == StatePlaying || p.state == StateLoading
	p.generation++
	p.out.Stop()
	p.cache.Invalidate()
	p.pinned = nil
	p.cfg = cfg
	cursor := p.cursor
	if active {
		p.state = StateIdle
	}
	p.mu.Unlock()

	if active {
		if err := p.Play(cursor); err != nil {
			p.fail(cursor, err)
		}
	}
}

func (p *Player) SetVoice(voice string) {
	cfg := p.Settings()
	cfg.Voice = voice
	p.Configure(cfg)
}

func (p *Player) SetEmotion(emotion string) {
	cfg := p.Settings()
	cfg.Emotion = emotion
	p.Configure(cfg)
}

func (p *Player) SetDialect(dialect string) {
	cfg := p.Settings()
	cfg.Dialect = dialect
	p.Configure(cfg)
}

func clipKey(text string, cfg Config) Key {
	return Key{Sentence: text, Voice: cfg.Voice, Emotion: cfg.Emotion, Dialect: cfg.Dialect}
}

// fetch resolves a sentence clip, cache first. The result is only inserted
// while the generation still matches, so a slow fetch cannot repopulate an
// invalidated cache.
func (p *Player) fetch(text string, cfg Config, gen uint64) (string, error) {
	key := clipKey(text, cfg)
	if path, ok := p.cache.Get(key); ok {
		return path, nil
	}

	audio, err := p.synth.Synthesize(p.ctx, speech.Request{
		Text:    text,
		Voice:   cfg.Voice,
		Emotion: cfg.Emotion,
		Dialect: cfg.Dialect,
	})
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	stale := gen != p.generation
	p.mu.Unlock()
	if stale {
		return "", nil
	}
	return p.cache.Put(key, audio)
}

// watch waits for the clip to end and drives the auto-advance transition.
func (p *Player) watch(done <-chan struct{}, gen uint64, i int, key Key) {
	select {
	case <-done:
	case <-p.ctx.Done():
		return
	}

	p.mu.Lock()
	if gen != p.generation || p.state != StatePlaying {
		// a stale watcher must not release a pin the next session holds
		p.mu.Unlock()
		return
	}
	p.cache.Unpin(key)
	p.pinned = nil
	p.state = StateIdle
	last := i+1 >= len(p.sentences)
	p.mu.Unlock()

	if last {
		if p.onChapterDone != nil {
			p.onChapterDone()
		}
		return
	}
	if err := p.Play(i + 1); err != nil {
		p.fail(i+1, err)
	}
}

// prefetchFrom warms the cache for the next few sentences. Failures here
// only degrade the next transition to a cache miss.
func (p *Player) prefetchFrom(start int, cfg Config, gen uint64) {
	p.mu.Lock()
	end := start + p.prefetchN
	if end > len(p.sentences) {
		end = len(p.sentences)
	}
	if start >= end {
		p.mu.Unlock()
		return
	}
	window := append([]string(nil), p.sentences[start:end]...)
	p.mu.Unlock()

	for offset, text := range window {
		p.mu.Lock()
		stale := gen != p.generation
		p.mu.Unlock()
		if stale {
			return
		}

		key := clipKey(text, cfg)
		if _, ok := p.cache.Get(key); ok {
			continue
		}

		audio, err := p.synth.Synthesize(p.ctx, speech.Request{
			Text:    text,
			Voice:   cfg.Voice,
			Emotion: cfg.Emotion,
			Dialect: cfg.Dialect,
		})
		if err != nil {
			logrus.WithError(err).WithField("sentence", start+offset).Warn("prefetch failed")
			continue
		}

		p.mu.Lock()
		stale = gen != p.generation
		p.mu.Unlock()
		if stale {
			return
		}
		if _, err := p.cache.Put(key, audio); err != nil {
			logrus.WithError(err).Warn("failed to cache prefetched clip")
		}
	}
}

func (p *Player) fail(i int, err error) {
	logrus.WithError(err).WithField("sentence", i).Error("playback failed")
	if p.onError != nil {
		p.onError(err)
	}
}
