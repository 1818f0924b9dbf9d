// Package sandbox is an in-process implementation of the generative-art
// host: it stores parameter definitions, derives their values from the
// session hash and delivers update events to listeners.
package sandbox

import (
	"errors"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MJE43/fxparams/internal/engine"
	"github.com/MJE43/fxparams/internal/params"
)

// ContextCapture is the context the capture module runs the piece in.
const ContextCapture = "capture"

var ErrDuplicateID = errors.New("duplicate parameter id")

// Identity describes the session the piece runs in.
type Identity struct {
	Hash       string
	Minter     string
	Iteration  uint64
	Context    string
	InputBytes string
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used for definition and event tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Host) { h.log = l }
}

// Host holds one session's definitions, values and features.
type Host struct {
	id  Identity
	log zerolog.Logger

	rand       *engine.Rand
	randMinter *engine.Rand
	sampler    *engine.Rand

	mu        sync.RWMutex
	defs      []params.Parameter
	index     map[string]params.Parameter
	raw       map[string]any
	features  map[string]any
	listeners map[string][]*listener
	nextID    uint64
	previewed bool
}

// New creates a host for the given session. An empty hash is replaced with a
// fresh one.
func New(id Identity, opts ...Option) *Host {
	if id.Hash == "" {
		id.Hash = NewHash()
	}
	h := &Host{
		id:         id,
		log:        zerolog.Nop(),
		rand:       engine.NewRand(id.Hash, "rand", id.Iteration),
		randMinter: engine.NewRand(id.Minter, "rand", id.Iteration),
		sampler:    engine.NewRand(id.Hash, "random", id.Iteration),
		index:      map[string]params.Parameter{},
		raw:        map[string]any{},
		features:   map[string]any{},
		listeners:  map[string][]*listener{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) Hash() string { return h.id.Hash }
func (h *Host) Minter() string { return h.id.Minter }
func (h *Host) Iteration() uint64 { return h.id.Iteration }
func (h *Host) Context() string { return h.id.Context }
func (h *Host) InputBytes() string { return h.id.InputBytes }

// IsPreview reports whether the piece runs inside the capture module.
func (h *Host) IsPreview() bool { return h.id.Context == ContextCapture }

// Preview signals that the piece is ready to be captured.
func (h *Host) Preview() {
	h.mu.Lock()
	h.previewed = true
	h.mu.Unlock()
	h.log.Debug().Str("hash", h.id.Hash).Msg("preview triggered")
}

// Previewed reports whether Preview has been called.
func (h *Host) Previewed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.previewed
}

// Rand returns the next hash-seeded value in [0, 1).
func (h *Host) Rand() float64 { return h.rand.Float() }

// ResetRand rewinds Rand to its first value.
func (h *Host) ResetRand() { h.rand.Reset() }

// RandMinter returns the next minter-seeded value in [0, 1).
func (h *Host) RandMinter() float64 { return h.randMinter.Float() }

// ResetRandMinter rewinds RandMinter to its first value.
func (h *Host) ResetRandMinter() { h.randMinter.Reset() }

// Params stores the definitions and computes their values: the default when
// present, otherwise a value derived from the hash. Calling it again replaces
// the previous definitions. A duplicate id leaves the host unchanged.
func (h *Host) Params(defs []params.Parameter) error {
	index := make(map[string]params.Parameter, len(defs))
	for _, d := range defs {
		if _, dup := index[d.ID()]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, d.ID())
		}
		index[d.ID()] = d
	}

	src := engine.NewRand(h.id.Hash, "params", h.id.Iteration)
	raw := make(map[string]any, len(defs))
	for _, d := range defs {
		if v, ok := defaultValue(d); ok {
			raw[d.ID()] = v
			continue
		}
		raw[d.ID()] = sample(d, src)
	}

	h.mu.Lock()
	h.defs = slices.Clone(defs)
	h.index = index
	h.raw = raw
	h.mu.Unlock()

	h.log.Debug().Int("count", len(defs)).Str("hash", h.id.Hash).Msg("parameters defined")
	return nil
}

// Definitions returns the stored definitions in definition order.
func (h *Host) Definitions() []params.Parameter {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.defs)
}

// Features replaces the stored features.
func (h *Host) Features(features map[string]any) error {
	h.mu.Lock()
	h.features = maps.Clone(features)
	if h.features == nil {
		h.features = map[string]any{}
	}
	h.mu.Unlock()
	h.log.Debug().Int("count", len(features)).Msg("features defined")
	return nil
}

// Feature returns one stored feature.
func (h *Host) Feature(name string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.features[name]
	return v, ok
}

// FeaturesSnapshot returns a copy of the stored features.
func (h *Host) FeaturesSnapshot() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.features)
}

// RawParam returns the untransformed value of a parameter.
func (h *Host) RawParam(id string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.raw[id]
	return copyValue(v), ok
}

// RawParamValues returns every untransformed value keyed by id.
func (h *Host) RawParamValues() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string]any, len(h.raw))
	for k, v := range h.raw {
		out[k] = copyValue(v)
	}
	return out
}

// Param returns the value of a parameter as the piece uses it. Colors are
// expanded into a ColorValue.
func (h *Host) Param(id string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.raw[id]
	if !ok {
		return nil, false
	}
	return transform(h.index[id], v), true
}

// ParamValues returns every transformed value keyed by id.
func (h *Host) ParamValues() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string]any, len(h.raw))
	for k, v := range h.raw {
		out[k] = transform(h.index[k], v)
	}
	return out
}

// RandomParam draws a fresh value for the parameter with the given id. Stored
// values are not touched. An unknown id yields nil.
func (h *Host) RandomParam(id string) (any, error) {
	h.mu.RLock()
	def, ok := h.index[id]
	h.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return sample(def, h.sampler), nil
}

func defaultValue(p params.Parameter) (any, bool) {
	switch v := p.(type) {
	case params.Number:
		return v.Default()
	case params.BigInt:
		return v.Default()
	case params.String:
		return v.Default()
	case params.Select:
		return v.Default()
	case params.Color:
		return v.Default()
	case params.Boolean:
		return v.Default()
	}
	return nil, false
}

func transform(p params.Parameter, v any) any {
	if _, ok := p.(params.Color); ok {
		if s, ok := v.(string); ok {
			if c, err := ParseColor(s); err == nil {
				return c
			}
		}
	}
	return copyValue(v)
}

func copyValue(v any) any {
	if b, ok := v.(*big.Int); ok && b != nil {
		return new(big.Int).Set(b)
	}
	return v
}
