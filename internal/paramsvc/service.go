// Package paramsvc mediates between locally defined parameters and the host
// runtime. The Service owns the authoritative list of defined parameters;
// host failures reach the caller exactly as the host returned them.
package paramsvc

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/MJE43/fxparams/internal/params"
)

// Host is the narrow slice of the host runtime the service depends on.
type Host interface {
	// Params registers parameter definitions with the host.
	Params(defs []params.Parameter) error
	// Features registers derived features with the host.
	Features(features map[string]any) error
	// RandomParam returns one random value for the parameter id. A nil
	// value means the host had nothing for that id.
	RandomParam(id string) (any, error)
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger for debug tracing of host calls.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// Service holds the currently defined parameters and forwards definitions,
// features and random sampling requests to the host.
type Service struct {
	host Host
	log  zerolog.Logger

	mu      sync.RWMutex
	defined []params.Parameter
}

// New creates a service bound to host with an empty parameter list.
func New(host Host, opts ...Option) *Service {
	s := &Service{host: host, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefineParameters replaces the retained parameter list with defs, then
// forwards defs unchanged to the host. The previous list is discarded even
// when the host call fails.
func (s *Service) DefineParameters(defs []params.Parameter) error {
	s.mu.Lock()
	s.defined = append([]params.Parameter(nil), defs...)
	s.mu.Unlock()

	s.log.Debug().Int("count", len(defs)).Msg("defining parameters")
	return s.host.Params(defs)
}

// DefineFeatures forwards features unchanged to the host.
func (s *Service) DefineFeatures(features map[string]any) error {
	s.log.Debug().Int("count", len(features)).Msg("defining features")
	return s.host.Features(features)
}

// SampleRandomParameters asks the host for one random value per retained
// parameter, in definition order, and returns them keyed by id. A nil host
// value is stored as-is; a host error stops sampling and is returned as-is.
func (s *Service) SampleRandomParameters() (map[string]any, error) {
	s.mu.RLock()
	defined := s.defined
	s.mu.RUnlock()

	out := make(map[string]any, len(defined))
	for _, p := range defined {
		v, err := s.host.RandomParam(p.ID())
		if err != nil {
			return nil, err
		}
		out[p.ID()] = v
	}
	s.log.Debug().Int("count", len(out)).Msg("sampled random parameters")
	return out, nil
}

// Parameters returns a copy of the retained parameter list.
func (s *Service) Parameters() []params.Parameter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]params.Parameter(nil), s.defined...)
}
