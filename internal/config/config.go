package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/deploymenttheory/go-classicbox/internal/common/fsutil"
	"github.com/deploymenttheory/go-classicbox/internal/common/osutil"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name used for config files and directories
	AppName = "go-classicbox"

	// EnvPrefix is the prefix for environment variables
	EnvPrefix = "CLASSICBOX"
)

// AppConfig holds the application configuration
type AppConfig struct {
	// Core settings
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`

	// Output format for inspection commands: text, json, or plist
	Output string `mapstructure:"output"`

	// External tool settings
	Tools struct {
		// Unar is the path to The Unarchiver's unar binary; empty
		// means look it up on PATH
		Unar string `mapstructure:"unar"`

		// HFSUtilsDir is the directory holding the hfsutils binaries
		// (hmount, hdir, hcopy, ...); empty means use PATH
		HFSUtilsDir string `mapstructure:"hfsutils_dir"`

		// SaveForks extracts resource forks natively instead of as
		// AppleDouble files. Only works on macOS.
		SaveForks bool `mapstructure:"save_forks"`
	} `mapstructure:"tools"`

	// Workspace settings
	Workspace struct {
		TempDir string `mapstructure:"temp_dir"`
	} `mapstructure:"workspace"`
}

// Global variables
var (
	// Global configuration instance
	Instance AppConfig

	// Status indicators
	ConfigLoaded bool
	ConfigFile   string

	// Viper instance
	v *viper.Viper

	// Ensure thread safety
	initOnce sync.Once
)

// Initialize sets up the configuration system
func Initialize(cfgFile string) error {
	var err error

	initOnce.Do(func() {
		v = viper.New()

		setDefaults(v)

		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		} else {
			v.SetConfigName(AppName)
			v.SetConfigType("yaml")
			addSearchPaths(v)
		}

		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		v.AutomaticEnv()

		if readErr := v.ReadInConfig(); readErr != nil {
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
				// Only capture error if the config file was found but couldn't be read
				err = fmt.Errorf("error reading config file: %w", readErr)
			}
			// Config file not found, using defaults and environment variables
			ConfigLoaded = false
			ConfigFile = ""
		} else {
			ConfigLoaded = true
			ConfigFile = v.ConfigFileUsed()
		}

		if unmarshalErr := v.Unmarshal(&Instance); unmarshalErr != nil {
			err = fmt.Errorf("error parsing config: %w", unmarshalErr)
			return
		}

		ensureDirectories()
	})

	return err
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "human")
	v.SetDefault("output", "text")

	logDir, err := fsutil.GetLogDir(AppName)
	if err == nil {
		v.SetDefault("log_file", filepath.Join(logDir, "classicbox.log"))
	} else {
		v.SetDefault("log_file", "logs/classicbox.log")
	}

	v.SetDefault("tools.unar", "")
	v.SetDefault("tools.hfsutils_dir", "")
	v.SetDefault("tools.save_forks", osutil.IsMacOS())

	tempDir, err := fsutil.GetTempDir(AppName)
	if err == nil {
		v.SetDefault("workspace.temp_dir", tempDir)
	} else {
		v.SetDefault("workspace.temp_dir", "temp")
	}
}

// addSearchPaths adds config search paths
func addSearchPaths(v *viper.Viper) {
	// Always check current directory first
	v.AddConfigPath(".")

	if osutil.IsDevEnvironment() {
		configDir, err := fsutil.GetConfigDir(AppName)
		if err == nil {
			v.AddConfigPath(configDir)
		}
		return
	}

	if osutil.IsRunningInPipeline() {
		v.AddConfigPath("/etc/" + AppName)
		return
	}

	configDir, err := fsutil.GetConfigDir(AppName)
	if err == nil {
		v.AddConfigPath(configDir)
	}
}

// ensureDirectories creates necessary directories based on configuration
func ensureDirectories() {
	// Don't create directories in a pipeline environment unless explicitly requested
	if osutil.IsRunningInPipeline() && os.Getenv("CREATE_DIRS") != "true" {
		return
	}

	if Instance.LogFile != "" {
		_ = fsutil.CreateDirIfNotExists(filepath.Dir(Instance.LogFile))
	}
	if Instance.Workspace.TempDir != "" {
		_ = fsutil.CreateDirIfNotExists(Instance.Workspace.TempDir)
	}
}
