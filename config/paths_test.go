package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestGetUserConfigDir(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		expectXDG bool
	}{
		{
			name:      "XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			expectXDG: true,
		},
		{
			name:      "XDG_CONFIG_HOME unset",
			xdgConfig: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)

			dir, err := getUserConfigDir()
			if err != nil {
				t.Fatalf("getUserConfigDir() error = %v", err)
			}

			if tt.expectXDG {
				expected := filepath.Join(tt.xdgConfig, AppName)
				if dir != expected {
					t.Errorf("getUserConfigDir() = %q, want %q", dir, expected)
				}
				return
			}

			if filepath.Base(dir) != AppName {
				t.Errorf("getUserConfigDir() = %q, want a %q directory", dir, AppName)
			}
			if runtime.GOOS == "linux" {
				home, _ := os.UserHomeDir()
				expected := filepath.Join(home, ".config", AppName)
				if dir != expected {
					t.Errorf("getUserConfigDir() = %q, want %q", dir, expected)
				}
			}
		})
	}
}

func TestGetProjectRoot(t *testing.T) {
	root, err := getProjectRoot()
	if err != nil {
		t.Fatalf("getProjectRoot() error = %v", err)
	}

	if !filepath.IsAbs(root) {
		t.Errorf("getProjectRoot() = %q, want absolute path", root)
	}

	// Verify the directory exists
	if _, err := os.Stat(root); err != nil {
		t.Errorf("getProjectRoot() returned path that doesn't exist: %v", err)
	}
}

func TestPathManagerPaths(t *testing.T) {
	pm, err := newPathManager()
	if err != nil {
		t.Fatalf("newPathManager() error = %v", err)
	}

	tests := []struct {
		name   string
		getter func() string
	}{
		{"ConfigDir", pm.ConfigDir},
		{"ConfigFile", pm.ConfigFile},
		{"ProjectConfigDir", pm.ProjectConfigDir},
		{"ProjectConfigFile", pm.ProjectConfigFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.getter()
			if result == "" {
				t.Errorf("%s() returned empty string", tt.name)
			}
			if !filepath.IsAbs(result) {
				t.Errorf("%s() = %q, want absolute path", tt.name, result)
			}
		})
	}

	if filepath.Base(pm.ConfigFile()) != "tagfilter.yaml" {
		t.Errorf("ConfigFile() = %q, want tagfilter.yaml", pm.ConfigFile())
	}
}

func TestPathManagerConfigSearchPaths(t *testing.T) {
	tmpDir := t.TempDir()
	pm := &PathManager{
		configDir:   filepath.Join(tmpDir, "config"),
		projectRoot: tmpDir,
	}

	paths := pm.ConfigSearchPaths()
	expected := []string{
		filepath.Join(tmpDir, ".tagfilter"),
		filepath.Join(tmpDir, "config"),
		tmpDir,
	}
	if len(paths) != len(expected) {
		t.Fatalf("ConfigSearchPaths() returned %d paths, want %d", len(paths), len(expected))
	}
	for i := range expected {
		if paths[i] != expected[i] {
			t.Errorf("ConfigSearchPaths()[%d] = %q, want %q", i, paths[i], expected[i])
		}
	}
}

func TestGlobalAccessorFunctions(t *testing.T) {
	ResetPathManager()
	defer ResetPathManager()
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	if got := GetConfigFile(); got != filepath.Join("/custom/config", AppName, "tagfilter.yaml") {
		t.Errorf("GetConfigFile() = %q", got)
	}

	root, err := getProjectRoot()
	if err != nil {
		t.Fatalf("getProjectRoot() error = %v", err)
	}
	if got := GetProjectConfigFile(); got != filepath.Join(root, ".tagfilter", "tagfilter.yaml") {
		t.Errorf("GetProjectConfigFile() = %q", got)
	}
}

func TestInitPaths(t *testing.T) {
	// Reset to test initialization
	ResetPathManager()
	defer ResetPathManager() // Clean up after test

	err := InitPaths()
	if err != nil {
		t.Fatalf("InitPaths() error = %v", err)
	}

	// After InitPaths, all accessors should work
	if GetConfigDir() == "" {
		t.Error("GetConfigDir() returned empty after InitPaths()")
	}
	if len(GetConfigSearchPaths()) != 3 {
		t.Error("GetConfigSearchPaths() should return 3 paths after InitPaths()")
	}
}

func TestResetPathManager(t *testing.T) {
	defer ResetPathManager()

	// First initialization
	ResetPathManager()
	t.Setenv("XDG_CONFIG_HOME", "/first/config")
	if err := InitPaths(); err != nil {
		t.Fatalf("InitPaths() error = %v", err)
	}
	first := GetConfigDir()

	// Reset and reinitialize with a different environment
	ResetPathManager()
	t.Setenv("XDG_CONFIG_HOME", "/second/config")
	if err := InitPaths(); err != nil {
		t.Fatalf("InitPaths() error = %v", err)
	}
	second := GetConfigDir()

	if first == second {
		t.Errorf("expected different config dirs after reset, got %q both times", first)
	}
	if second != filepath.Join("/second/config", AppName) {
		t.Errorf("GetConfigDir() = %q", second)
	}
}
