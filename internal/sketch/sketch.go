// Package sketch is the demo piece: it declares its parameters and features
// against a sandbox host and reacts to parameter updates.
package sketch

import (
	"math"
	"math/big"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MJE43/fxparams/internal/metrics"
	"github.com/MJE43/fxparams/internal/params"
	"github.com/MJE43/fxparams/internal/paramsvc"
	"github.com/MJE43/fxparams/internal/sandbox"
)

const maxSafeInteger = 1<<53 - 1

// RejectedNumber is the number_id value AcceptUpdate refuses.
const RejectedNumber = 5.0

// Definitions returns the demo parameter set.
func Definitions() []params.Parameter {
	bigLimit := big.NewInt(maxSafeInteger * 4)
	return []params.Parameter{
		params.NewNumber("number_id", "A number/float64", &params.NumberOptions{
			Min:  params.Ptr(1.0),
			Max:  params.Ptr(10.0),
			Step: params.Ptr(0.0001),
		}, nil),
		params.NewBigInt("bigint_id", "A bigint", &params.BigIntOptions{
			Min:  new(big.Int).Neg(bigLimit),
			Max:  bigLimit,
			Step: big.NewInt(1),
		}, nil),
		params.NewString("string_id_long", "A string long", &params.StringOptions{
			MinLength: params.Ptr(1),
			MaxLength: params.Ptr(512),
		}, nil),
		params.NewSelect("select_id", "A selection", []string{"apple", "orange", "pear"}, nil),
		params.NewColor("color_id", "A color", nil),
		params.NewBoolean("boolean_id", "A boolean", nil),
		params.NewString("string_id", "A string", &params.StringOptions{
			MinLength: params.Ptr(1),
			MaxLength: params.Ptr(512),
		}, nil),
	}
}

// Features derives the demo features from the host's randomness and values.
func Features(h *sandbox.Host) map[string]any {
	number, _ := h.Param("number_id")
	feature := math.Floor(h.Rand() * 10)
	boolean := h.Rand() > 0.5
	letter := math.Floor(h.Rand() * 4)
	return map[string]any{
		"A random feature":                  int(feature),
		"A random boolean":                  boolean,
		"A random string":                   string(rune('A' + int(letter))),
		"Feature from params, its a number": number,
	}
}

// AcceptUpdate is the params:update validator.
func AcceptUpdate(values map[string]any) bool {
	if v, ok := values["number_id"].(float64); ok && v == RejectedNumber {
		return false
	}
	return true
}

// Option configures a Sketch.
type Option func(*Sketch)

// WithLogger sets the sketch logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Sketch) { s.log = l }
}

// WithDefinitions replaces the demo parameter set.
func WithDefinitions(defs []params.Parameter) Option {
	return func(s *Sketch) { s.defs = defs }
}

// Sketch binds the demo piece to one host.
type Sketch struct {
	host *sandbox.Host
	svc  *paramsvc.Service
	log  zerolog.Logger
	defs []params.Parameter

	mu      sync.Mutex
	renders int
	off     func()
}

// New creates a sketch over host. Call Init before use.
func New(host *sandbox.Host, opts ...Option) *Sketch {
	s := &Sketch{host: host, log: zerolog.Nop(), defs: Definitions()}
	for _, opt := range opts {
		opt(s)
	}
	s.svc = paramsvc.New(host, paramsvc.WithLogger(s.log))
	return s
}

// Init defines the parameters, then the features, then listens for updates.
// Calling it again re-runs the sequence.
func (s *Sketch) Init() error {
	if err := s.svc.DefineParameters(s.defs); err != nil {
		metrics.RecordHostError("params")
		return err
	}
	metrics.RecordDefinitions(len(s.defs))

	if err := s.svc.DefineFeatures(Features(s.host)); err != nil {
		metrics.RecordHostError("features")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.off != nil {
		s.off()
	}
	s.off = s.host.On(sandbox.EventParamsUpdate, AcceptUpdate, s.onUpdate)
	s.renders++
	s.log.Info().Str("hash", s.host.Hash()).Int("params", len(s.defs)).Msg("sketch initialised")
	return nil
}

func (s *Sketch) onUpdate(optIn bool, values map[string]any) {
	metrics.RecordUpdate(optIn)
	if !optIn {
		s.log.Info().Interface("number_id", values["number_id"]).Msg("update rejected")
		return
	}
	s.mu.Lock()
	s.renders++
	s.mu.Unlock()
	s.log.Debug().Int("values", len(values)).Msg("re-rendering after update")
}

// Randomize samples a random value for every parameter and emits it as a
// params:update.
func (s *Sketch) Randomize() (sandbox.Update, error) {
	values, err := s.svc.SampleRandomParameters()
	metrics.RecordSample(err == nil)
	if err != nil {
		metrics.RecordHostError("random_param")
		return sandbox.Update{}, err
	}
	return s.host.Emit(sandbox.EventParamsUpdate, values)
}

// Renders reports how many times the sketch has drawn.
func (s *Sketch) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

// Host returns the sketch's host.
func (s *Sketch) Host() *sandbox.Host { return s.host }

// Service returns the sketch's parameter service.
func (s *Sketch) Service() *paramsvc.Service { return s.svc }
