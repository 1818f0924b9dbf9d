package scripting

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MJE43/fxparams/internal/params"
)

// HostObject is the global the host script defines.
const HostObject = "$fx"

var (
	ErrNoHost      = errors.New("host object not defined")
	ErrNotCallable = errors.New("host member is not a function")
)

// Host adapts a script's $fx object to the parameter service. Definitions are
// handed over as their JSON records.
type Host struct {
	vm *VM
}

// NewHost wraps a VM whose script has already defined $fx.
func NewHost(vm *VM) *Host {
	return &Host{vm: vm}
}

// Params calls $fx.params with the definition records.
func (h *Host) Params(defs []params.Parameter) error {
	recs, err := toPlain(params.Records(defs))
	if err != nil {
		return err
	}
	_, err = h.vm.CallMethod(HostObject, "params", recs)
	return err
}

// Features calls $fx.features.
func (h *Host) Features(features map[string]any) error {
	plain, err := toPlain(features)
	if err != nil {
		return err
	}
	_, err = h.vm.CallMethod(HostObject, "features", plain)
	return err
}

// RandomParam calls $fx.getRandomParam and exports the result.
func (h *Host) RandomParam(id string) (any, error) {
	v, err := h.vm.CallMethod(HostObject, "getRandomParam", id)
	if err != nil {
		return nil, err
	}
	return export(v), nil
}

// toPlain converts v to the maps and slices the runtime maps onto plain
// JavaScript objects and arrays.
func toPlain(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode host argument: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encode host argument: %w", err)
	}
	return out, nil
}
