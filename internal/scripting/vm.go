// Package scripting runs a piece's host script in a sandboxed JavaScript
// runtime and exposes the script's $fx object as a parameter host.
package scripting

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
)

const (
	DefaultInitTimeout = 2 * time.Second
	DefaultCallTimeout = 1 * time.Second

	defaultMaxLogs = 500
)

var ErrTimeout = errors.New("script timed out")

// LogEntry is one message logged by the script.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// VMOption configures a VM.
type VMOption func(*VM)

// WithInitTimeout bounds Execute.
func WithInitTimeout(d time.Duration) VMOption {
	return func(vm *VM) { vm.initTimeout = d }
}

// WithCallTimeout bounds every function call into the script.
func WithCallTimeout(d time.Duration) VMOption {
	return func(vm *VM) { vm.callTimeout = d }
}

// VM wraps a goja runtime with sandbox restrictions. Calls are serialized.
type VM struct {
	runtime *goja.Runtime
	mu      sync.Mutex

	initTimeout time.Duration
	callTimeout time.Duration

	logs    []LogEntry
	logsMu  sync.Mutex
	maxLogs int
}

// NewVM creates a sandboxed runtime.
func NewVM(opts ...VMOption) *VM {
	vm := &VM{
		runtime:     goja.New(),
		initTimeout: DefaultInitTimeout,
		callTimeout: DefaultCallTimeout,
		maxLogs:     defaultMaxLogs,
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.injectGlobalFunctions()
	return vm
}

// injectGlobalFunctions registers log and console.log and removes globals a
// host script has no business reaching.
func (vm *VM) injectGlobalFunctions() {
	vm.runtime.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		vm.appendLog(strings.Join(parts, " "))
		return goja.Undefined()
	})

	console := vm.runtime.NewObject()
	_ = console.Set("log", vm.runtime.Get("log"))
	vm.runtime.Set("console", console)

	vm.runtime.Set("require", goja.Undefined())
	vm.runtime.Set("fetch", goja.Undefined())
	vm.runtime.Set("XMLHttpRequest", goja.Undefined())
	vm.runtime.Set("eval", goja.Undefined())
	vm.runtime.Set("Function", goja.Undefined())
}

func (vm *VM) appendLog(msg string) {
	vm.logsMu.Lock()
	defer vm.logsMu.Unlock()
	if len(vm.logs) >= vm.maxLogs {
		vm.logs = vm.logs[1:]
	}
	vm.logs = append(vm.logs, LogEntry{Time: time.Now(), Message: msg})
}

// Execute runs script source once, typically to define $fx.
func (vm *VM) Execute(source string) error {
	return vm.runWithTimeout(vm.initTimeout, func() error {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		if _, err := vm.runtime.RunString(source); err != nil {
			return fmt.Errorf("script execution error: %w", err)
		}
		return nil
	})
}

// CallMethod calls object.method(args...) and returns the result. Go values
// in args are converted with the runtime's default mapping. An exception
// thrown by the script is returned as is.
func (vm *VM) CallMethod(object, method string, args ...any) (goja.Value, error) {
	var out goja.Value
	err := vm.runWithTimeout(vm.callTimeout, func() error {
		vm.mu.Lock()
		defer vm.mu.Unlock()

		obj := vm.runtime.Get(object)
		if obj == nil || goja.IsUndefined(obj) || goja.IsNull(obj) {
			return fmt.Errorf("%w: %s is not defined", ErrNoHost, object)
		}
		target := obj.ToObject(vm.runtime)
		fn, ok := goja.AssertFunction(target.Get(method))
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrNotCallable, object, method)
		}

		values := make([]goja.Value, len(args))
		for i, a := range args {
			values[i] = vm.runtime.ToValue(a)
		}
		result, err := fn(target, values...)
		if err != nil {
			return err
		}
		out = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Global reads a global variable, exported to Go. Undefined reads as nil.
func (vm *VM) Global(name string) any {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return export(vm.runtime.Get(name))
}

// GetLogs returns a copy of the current log buffer.
func (vm *VM) GetLogs() []LogEntry {
	vm.logsMu.Lock()
	defer vm.logsMu.Unlock()
	out := make([]LogEntry, len(vm.logs))
	copy(out, vm.logs)
	return out
}

// ClearLogs clears the log buffer.
func (vm *VM) ClearLogs() {
	vm.logsMu.Lock()
	defer vm.logsMu.Unlock()
	vm.logs = vm.logs[:0]
}

func (vm *VM) runWithTimeout(timeout time.Duration, fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		// Interrupt a runaway script execution.
		vm.runtime.Interrupt("script execution timeout")
		select {
		case err := <-done:
			vm.runtime.ClearInterrupt()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTimeout, err)
			}
			return ErrTimeout
		case <-time.After(200 * time.Millisecond):
			return ErrTimeout
		}
	}
}

func export(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}
