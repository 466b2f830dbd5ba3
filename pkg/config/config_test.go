package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	Name string   `yaml:"name" env:"NAME"`
	HTTP testHTTP `yaml:"http" envPrefix:"HTTP_"`
	Tags []string `yaml:"tags"`
}

type testHTTP struct {
	Port int `yaml:"port" env:"PORT"`
}

func (c *testConfig) Validate() error {
	if c.HTTP.Port == 0 {
		return os.ErrInvalid
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_SITE_NAME", "Flix")
	p := writeFile(t, "name: ${TEST_SITE_NAME}\nhttp:\n  port: 8080\n")

	var cfg testConfig
	if err := Load(p, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "Flix" || cfg.HTTP.Port != 8080 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_EnvOverlay(t *testing.T) {
	t.Setenv("TESTAPP_HTTP_PORT", "9090")
	p := writeFile(t, "name: file\nhttp:\n  port: 8080\n")

	var cfg testConfig
	if err := Load(p, &cfg, WithEnvOverlay("TESTAPP_")); err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want env value", cfg.HTTP.Port)
	}
	if cfg.Name != "file" {
		t.Errorf("name = %q, unset env must keep file value", cfg.Name)
	}
}

func TestLoad_NoOverlayIgnoresEnv(t *testing.T) {
	t.Setenv("TESTAPP_HTTP_PORT", "9090")
	p := writeFile(t, "http:\n  port: 8080\n")

	var cfg testConfig
	if err := Load(p, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	p := writeFile(t, "name: x\n")
	var cfg testConfig
	err := Load(p, &cfg)
	if err == nil || !strings.Contains(err.Error(), "validation") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("TESTAPP_HTTP_PORT", "not-a-number")
	p := writeFile(t, "http:\n  port: 8080\n")
	var cfg testConfig
	if err := Load(p, &cfg, WithEnvOverlay("TESTAPP_")); err == nil {
		t.Error("expected env parse error")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	def := writeFile(t, "http:\n  port: 7070\n")
	var cfg testConfig
	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"), def, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}

	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"), "", &cfg); err == nil {
		t.Error("expected error without default file")
	}
}
