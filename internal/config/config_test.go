package config

import (
	"os"
	"path/filepath"
	"testing"
)

func load(t *testing.T, args ...string) (*Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		t.Fatal("unexpected error parsing flags:", err)
	}
	return Load(fs)
}

func TestDefaults(t *testing.T) {
	c, err := load(t, "--train", "a.txt", "--test", "b.txt")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	if c.Method != "forest" {
		t.Error("expected default method forest, got:", c.Method)
	}
	if c.Trees != 15 {
		t.Error("expected 15 trees, got:", c.Trees)
	}
	if c.FeatureRatio != 0.2 {
		t.Error("expected feature ratio 0.2, got:", c.FeatureRatio)
	}
	if c.Log.Level != "info" || c.Log.Format != "text" {
		t.Error("unexpected log defaults:", c.Log)
	}
}

func TestPositionalFiles(t *testing.T) {
	c, err := load(t, "-m", "bag", "train.txt", "test.txt")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if c.Train != "train.txt" || c.Test != "test.txt" {
		t.Error("expected positional train and test files, got:", c.Train, c.Test)
	}
	if c.Method != "bag" {
		t.Error("expected method bag, got:", c.Method)
	}
}

func TestValidation(t *testing.T) {
	if _, err := load(t, "--test", "b.txt"); err == nil {
		t.Error("expected error without training data")
	}
	if _, err := load(t, "-d", "a", "-t", "b", "--method", "svm"); err == nil {
		t.Error("expected error for unknown method")
	}
	if _, err := load(t, "-d", "a", "-t", "b", "--trees", "0"); err == nil {
		t.Error("expected error for zero trees")
	}
	if _, err := load(t, "-d", "a", "-t", "b", "--feature-ratio", "0"); err == nil {
		t.Error("expected error for zero feature ratio")
	}
	if _, err := load(t, "-d", "a", "-t", "b", "--log-level", "loud"); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dtree.toml")
	content := `
method = "tree"
train = "from-file.txt"
test = "test.txt"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal("unexpected error:", err)
	}

	c, err := load(t, "--config", path, "--train", "from-flag.txt")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if c.Method != "tree" {
		t.Error("expected method from config file, got:", c.Method)
	}
	if c.Train != "from-flag.txt" {
		t.Error("expected explicit flag to win over config file, got:", c.Train)
	}
	if c.Log.Level != "debug" {
		t.Error("expected log level from config file, got:", c.Log.Level)
	}
}

func TestEnv(t *testing.T) {
	t.Setenv("DTREE_TREES", "40")
	t.Setenv("DTREE_LOG_FORMAT", "json")

	c, err := load(t, "-d", "a", "-t", "b")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if c.Trees != 40 {
		t.Error("expected trees from environment, got:", c.Trees)
	}
	if c.Log.Format != "json" {
		t.Error("expected log format from environment, got:", c.Log.Format)
	}
}
