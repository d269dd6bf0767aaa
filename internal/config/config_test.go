package config

import (
	"testing"
)

// TestDefaultEnv verifies default environment values
func TestDefaultEnv(t *testing.T) {
	env := DefaultEnv()

	if env.ConfigPath != "jvmtune.yaml" {
		t.Errorf("ConfigPath = %q, want %q", env.ConfigPath, "jvmtune.yaml")
	}
	if env.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", env.LogLevel, "info")
	}
	if env.Encoder != "" {
		t.Errorf("Encoder = %q, want empty", env.Encoder)
	}
}

// TestLoadEnvUnset tests fallback to defaults when nothing is set
func TestLoadEnvUnset(t *testing.T) {
	t.Setenv("JVMTUNE_CONFIG", "")
	t.Setenv("JVMTUNE_LOG_LEVEL", "")
	t.Setenv("JVMTUNE_ENCODER", "")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if env.ConfigPath != DefaultConfigPath {
		t.Errorf("ConfigPath = %q, want %q", env.ConfigPath, DefaultConfigPath)
	}
	if env.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", env.LogLevel, DefaultLogLevel)
	}
}

// TestLoadEnvSet tests that variables override defaults
func TestLoadEnvSet(t *testing.T) {
	t.Setenv("JVMTUNE_CONFIG", "/etc/jvmtune/app.toml")
	t.Setenv("JVMTUNE_LOG_LEVEL", "debug")
	t.Setenv("JVMTUNE_ENCODER", "web")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if env.ConfigPath != "/etc/jvmtune/app.toml" {
		t.Errorf("ConfigPath = %q", env.ConfigPath)
	}
	if env.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", env.LogLevel)
	}
	if env.Encoder != "web" {
		t.Errorf("Encoder = %q", env.Encoder)
	}
}

// TestLoadEnvPartial tests that one variable leaves the other defaults alone
func TestLoadEnvPartial(t *testing.T) {
	t.Setenv("JVMTUNE_CONFIG", "")
	t.Setenv("JVMTUNE_LOG_LEVEL", "warn")
	t.Setenv("JVMTUNE_ENCODER", "")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if env.ConfigPath != DefaultConfigPath {
		t.Errorf("ConfigPath = %q, want %q", env.ConfigPath, DefaultConfigPath)
	}
	if env.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", env.LogLevel)
	}
}

// TestMergeWithFlags tests that flags take precedence
func TestMergeWithFlags(t *testing.T) {
	env := DefaultEnv()
	env.Encoder = "web"

	path := "other.yaml"
	level := "trace"
	env.MergeWithFlags(&path, nil, &level)

	if env.ConfigPath != "other.yaml" {
		t.Errorf("ConfigPath = %q, want other.yaml", env.ConfigPath)
	}
	if env.Encoder != "web" {
		t.Errorf("Encoder = %q, want web (unchanged)", env.Encoder)
	}
	if env.LogLevel != "trace" {
		t.Errorf("LogLevel = %q, want trace", env.LogLevel)
	}
}

// TestValidate tests validation of settings
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     Env
		wantErr bool
	}{
		{"defaults", *DefaultEnv(), false},
		{"upper case level", Env{ConfigPath: "a.yaml", LogLevel: "DEBUG"}, false},
		{"empty path", Env{LogLevel: "info"}, true},
		{"bad level", Env{ConfigPath: "a.yaml", LogLevel: "loud"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.env.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
