package acmatch

import (
	"errors"
	"testing"
)

// TestDefaultConfigValues verifies DefaultConfig returns expected field values.
func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()

	if !c.EnablePrefilter {
		t.Error("EnablePrefilter should be true by default")
	}
	if !c.EnableRejectFilter {
		t.Error("EnableRejectFilter should be true by default")
	}
	if c.RejectMinLen != 64*1024 {
		t.Errorf("RejectMinLen = %d, want 65536", c.RejectMinLen)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

// TestConfigValidateRejectMinLen tests RejectMinLen validation boundaries.
func TestConfigValidateRejectMinLen(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		minLen  int
		wantErr bool
	}{
		{"zero is invalid", true, 0, true},
		{"negative is invalid", true, -5, true},
		{"minimum valid", true, 1, false},
		{"maximum valid", true, 1 << 30, false},
		{"exceeds maximum", true, 1<<30 + 1, true},
		{"ignored when disabled", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			c.EnableRejectFilter = tt.enabled
			c.RejectMinLen = tt.minLen

			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cfgErr.Field != "RejectMinLen" {
				t.Errorf("Field = %q, want RejectMinLen", cfgErr.Field)
			}
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "RejectMinLen", Message: "must be positive"}
	want := "acmatch: invalid config: RejectMinLen: must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
