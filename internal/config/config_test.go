package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"github.com/Sonukumar0009/Farmart/internal/decode"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	Setup(v)

	got, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}

	want := Config{
		ArchivePath: "logs.zip",
		OutputDir:   "output",
		Decode:      decode.Ignore,
		Include:     []string{"**"},
		Format:      "text",
		Addr:        ":8080",
		Debounce:    500 * time.Millisecond,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EXTRACT_LOGS_ARCHIVE", "/data/logs_2024.log.zip")
	t.Setenv("EXTRACT_LOGS_OUTPUT_DIR", "/tmp/extracted")
	t.Setenv("EXTRACT_LOGS_DECODE", "replace")

	v := viper.New()
	Setup(v)

	got, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if got.ArchivePath != "/data/logs_2024.log.zip" {
		t.Errorf("expected archive from env, got %q", got.ArchivePath)
	}
	if got.OutputDir != "/tmp/extracted" {
		t.Errorf("expected output dir from env, got %q", got.OutputDir)
	}
	if got.Decode != decode.Replace {
		t.Errorf("expected replace policy, got %s", got.Decode)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extract-logs.yaml")
	content := "archive: archives/app.zip\noutput-dir: extracted\ninclude:\n  - \"app/**\"\n  - \"*.gz\"\noutput: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	Setup(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatal(err)
	}

	got, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if got.ArchivePath != "archives/app.zip" || got.OutputDir != "extracted" || got.Format != "json" {
		t.Errorf("unexpected config %+v", got)
	}
	if diff := cmp.Diff([]string{"app/**", "*.gz"}, got.Include); diff != "" {
		t.Errorf("include mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{KeyDecode, "latin1"},
		{KeyFormat, "xml"},
		{KeyArchive, ""},
		{KeyOutputDir, ""},
	}

	for _, tt := range tests {
		v := viper.New()
		Setup(v)
		v.Set(tt.key, tt.value)
		if _, err := Load(v); err == nil {
			t.Errorf("expected error for %s=%q", tt.key, tt.value)
		}
	}
}
