package scripting

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dop251/goja"
)

func TestVMBlocksDangerousGlobals(t *testing.T) {
	vm := NewVM()
	if err := vm.Execute(`var kinds = [typeof require, typeof fetch, typeof XMLHttpRequest, typeof eval, typeof Function].join(",")`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	got := vm.Global("kinds")
	want := "undefined,undefined,undefined,undefined,undefined"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestVMCapturesLogs(t *testing.T) {
	vm := NewVM()
	if err := vm.Execute(`log("a", 1); console.log("b", true)`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	logs := vm.GetLogs()
	if len(logs) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(logs))
	}
	if logs[0].Message != "a 1" || logs[1].Message != "b true" {
		t.Errorf("unexpected messages: %q, %q", logs[0].Message, logs[1].Message)
	}

	vm.ClearLogs()
	if len(vm.GetLogs()) != 0 {
		t.Error("expected empty log buffer after ClearLogs")
	}
}

func TestVMLogBufferIsBounded(t *testing.T) {
	vm := NewVM()
	if err := vm.Execute(`for (var i = 0; i < 600; i++) log(i)`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	logs := vm.GetLogs()
	if len(logs) != defaultMaxLogs {
		t.Fatalf("expected %d entries, got %d", defaultMaxLogs, len(logs))
	}
	if logs[0].Message != "100" {
		t.Errorf("expected oldest entry 100, got %q", logs[0].Message)
	}
}

func TestVMExecuteSyntaxError(t *testing.T) {
	vm := NewVM()
	err := vm.Execute(`var = ;`)
	if err == nil || !strings.Contains(err.Error(), "script execution error") {
		t.Fatalf("expected execution error, got %v", err)
	}
}

func TestVMCallTimeout(t *testing.T) {
	vm := NewVM(WithCallTimeout(50 * time.Millisecond))
	if err := vm.Execute(`var host = { spin: function () { for (;;) {} }, ok: function () { return 1 } }`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	_, err := vm.CallMethod("host", "spin")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}

	v, err := vm.CallMethod("host", "ok")
	if err != nil {
		t.Fatalf("call after timeout failed: %v", err)
	}
	if v.ToInteger() != 1 {
		t.Errorf("expected 1, got %v", v)
	}
}

func TestVMCallMethodErrors(t *testing.T) {
	vm := NewVM()
	if err := vm.Execute(`var host = { value: 3, fail: function () { throw new Error("boom") } }`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if _, err := vm.CallMethod("missing", "x"); !errors.Is(err, ErrNoHost) {
		t.Errorf("expected ErrNoHost, got %v", err)
	}
	if _, err := vm.CallMethod("host", "value"); !errors.Is(err, ErrNotCallable) {
		t.Errorf("expected ErrNotCallable, got %v", err)
	}

	_, err := vm.CallMethod("host", "fail")
	var exc *goja.Exception
	if !errors.As(err, &exc) {
		t.Fatalf("expected *goja.Exception, got %T", err)
	}
	if !strings.Contains(exc.Error(), "boom") {
		t.Errorf("unexpected exception text %q", exc.Error())
	}
}
