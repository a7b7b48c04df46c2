package monitoring

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	// Save original logger
	original := Logf
	defer func() { Logf = original }()

	// Test setting a custom logger
	called := false
	customLogger := func(format string, v ...interface{}) {
		called = true
	}

	SetLogger(customLogger)
	Logf("test message")

	if !called {
		t.Error("Custom logger was not called")
	}

	// Test setting nil logger (should create no-op)
	SetLogger(nil)
	// This should not panic
	Logf("test message")

	// Verify the logger is a no-op by checking it doesn't panic
	// and doesn't call anything
	noOpCalled := false
	testLogger := func(format string, v ...interface{}) {
		noOpCalled = true
	}
	SetLogger(testLogger)
	// First verify our test logger works
	Logf("test")
	if !noOpCalled {
		t.Error("Test logger should have been called")
	}

	// Now set to nil and verify it doesn't call our logger
	noOpCalled = false
	SetLogger(nil)
	Logf("test")
	if noOpCalled {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestLogf_Default(t *testing.T) {
	// Test that Logf is not nil by default
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}

	// Test that we can call it without panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logf panicked: %v", r)
		}
	}()

	Logf("test message: %s", "value")
}

func TestLogStreams(t *testing.T) {
	defer SetLogWriters(nil, nil, nil)

	var ops, diag, trace bytes.Buffer
	SetLogWriters(&ops, &diag, &trace)

	Opsf("ops %d", 1)
	Diagf("diag %d", 2)
	Tracef("trace %d", 3)

	if !strings.Contains(ops.String(), "ops 1") {
		t.Errorf("ops stream missing message: %q", ops.String())
	}
	if !strings.Contains(diag.String(), "diag 2") {
		t.Errorf("diag stream missing message: %q", diag.String())
	}
	if !strings.Contains(trace.String(), "trace 3") {
		t.Errorf("trace stream missing message: %q", trace.String())
	}
	if strings.Contains(ops.String(), "diag") {
		t.Errorf("ops stream received diag message: %q", ops.String())
	}
}

func TestLogStreams_Disabled(t *testing.T) {
	var buf bytes.Buffer
	SetLegacyLogger(&buf)
	SetLogWriters(nil, nil, nil)

	Opsf("dropped")
	Diagf("dropped")
	Tracef("dropped")

	if buf.Len() != 0 {
		t.Errorf("expected no output with disabled streams, got %q", buf.String())
	}
}

func TestSetLegacyLogger(t *testing.T) {
	defer SetLogWriters(nil, nil, nil)

	var buf bytes.Buffer
	SetLegacyLogger(&buf)
	Opsf("a")
	Diagf("b")
	Tracef("c")

	out := buf.String()
	for _, want := range []string{"a", "b", "c", "[contact]"} {
		if !strings.Contains(out, want) {
			t.Errorf("legacy logger output missing %q: %q", want, out)
		}
	}
}
