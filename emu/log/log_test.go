package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestModuleByName(t *testing.T) {
	for _, name := range ModuleNames() {
		mod, ok := ModuleByName(name)
		if !ok || mod.String() != name {
			t.Errorf("ModuleByName(%q) = %v, %v", name, mod, ok)
		}
	}
	if _, ok := ModuleByName("<error>"); ok {
		t.Errorf("ModuleByName should not find the placeholder module")
	}
	if _, ok := ModuleByName("nope"); ok {
		t.Errorf("ModuleByName found an unknown module")
	}
}

func TestDebugMask(t *testing.T) {
	defer DisableDebugModules(ModuleMaskAll)

	if ModBus.Enabled(DebugLevel) {
		t.Fatalf("debug should be disabled by default")
	}
	if !ModBus.Enabled(WarnLevel) || !ModBus.Enabled(ErrorLevel) {
		t.Fatalf("warnings and errors should always be enabled")
	}
	if ModBus.DebugZ("msg") != nil {
		t.Fatalf("DebugZ should return nil when disabled")
	}

	// Chaining on a disabled entry is a no-op.
	ModBus.DebugZ("msg").Hex32("addr", 1).String("k", "v").End()

	EnableDebugModules(ModBus.Mask())
	if !ModBus.Enabled(DebugLevel) || ModEmu.Enabled(DebugLevel) {
		t.Errorf("only the bus module should have debug enabled")
	}
}

func TestEntryZOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer DisableDebugModules(ModuleMaskAll)

	EnableDebugModules(ModScenario.Mask())
	ModScenario.DebugZ("step done").
		Hex32("addr", 0x1000).
		Bool("ok", true).
		Uint("n", 42).
		Error("err", errors.New("boom")).
		End()

	out := buf.String()
	for _, want := range []string{"step done", "addr=0x00001000", "ok=true", "n=42", "err=boom", "_mod=scenario"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q doesn't contain %q", out, want)
		}
	}
}

func TestNewModule(t *testing.T) {
	mod := NewModule("custom")
	if got, ok := ModuleByName("custom"); !ok || got != mod {
		t.Errorf("ModuleByName(custom) = %v, %v, want %v", got, ok, mod)
	}
}
