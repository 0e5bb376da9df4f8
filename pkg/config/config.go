/*
Package config manages the TOML config for wordkey.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordkey/internal/utils"
	"github.com/bastiangx/wordkey/pkg/dictionary"
	"github.com/bastiangx/wordkey/pkg/session"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Keyboard KeyboardConfig `toml:"keyboard"`
	Suggest  SuggestConfig  `toml:"suggest"`
	Dict     DictConfig     `toml:"dict"`
	Server   ServerConfig   `toml:"server"`
	CLI      CliConfig      `toml:"cli"`
}

// KeyboardConfig holds key and language options.
type KeyboardConfig struct {
	IndentUnit       string   `toml:"indent_unit"`
	RepeatIntervalMs int      `toml:"repeat_interval_ms"`
	Languages        []string `toml:"languages"`
	ProfileDir       string   `toml:"profile_dir"`
}

// SuggestConfig holds suggestion bar options.
type SuggestConfig struct {
	Limit     int  `toml:"limit"`
	FoldCase  bool `toml:"fold_case"`
	CacheSize int  `toml:"cache_size"`
}

// DictConfig filters every vocabulary on load.
type DictConfig struct {
	MaxWords  int `toml:"max_words"`
	MinWeight int `toml:"min_weight"`
}

// ServerConfig has host bridge options.
type ServerConfig struct {
	MaxContext  int  `toml:"max_context"`
	WatchConfig bool `toml:"watch_config"`
}

// CliConfig holds terminal playground options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	ShowLayers   bool `toml:"show_layers"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordkey
// 2. ~/Library/Application Support/wordkey (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", utils.AppName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from the -config flag
// 2. Default path: [UserConfigDir]/wordkey/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Keyboard: KeyboardConfig{
			IndentUnit:       "    ",
			RepeatIntervalMs: 100,
			Languages:        []string{"english", "highlevel"},
		},
		Suggest: SuggestConfig{
			Limit:     12,
			FoldCase:  true,
			CacheSize: 128,
		},
		Dict: DictConfig{
			MaxWords:  50000,
			MinWeight: 0,
		},
		Server: ServerConfig{
			MaxContext:  256,
			WatchConfig: true,
		},
		CLI: CliConfig{
			DefaultLimit: 9,
			ShowLayers:   false,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Values that fail to decode fall back
// to their defaults while the rest of the file is kept.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse salvages what it can from a file the typed decode rejected.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "keyboard"); ok {
		extractKeyboardConfig(section, &config.Keyboard)
	}
	if section, ok := utils.ExtractSection(raw, "suggest"); ok {
		extractSuggestConfig(section, &config.Suggest)
	}
	if section, ok := utils.ExtractSection(raw, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.sanitize()
	return config, nil
}

func extractKeyboardConfig(data map[string]any, kb *KeyboardConfig) {
	if val, ok := utils.ExtractString(data, "indent_unit"); ok {
		kb.IndentUnit = val
	}
	if val, ok := utils.ExtractInt64(data, "repeat_interval_ms"); ok {
		kb.RepeatIntervalMs = val
	}
	if val, ok := utils.ExtractStringSlice(data, "languages"); ok {
		kb.Languages = val
	}
	if val, ok := utils.ExtractString(data, "profile_dir"); ok {
		kb.ProfileDir = val
	}
}

func extractSuggestConfig(data map[string]any, sg *SuggestConfig) {
	if val, ok := utils.ExtractInt64(data, "limit"); ok {
		sg.Limit = val
	}
	if val, ok := utils.ExtractBool(data, "fold_case"); ok {
		sg.FoldCase = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		sg.CacheSize = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
	if val, ok := utils.ExtractInt64(data, "min_weight"); ok {
		dict.MinWeight = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_context"); ok {
		server.MaxContext = val
	}
	if val, ok := utils.ExtractBool(data, "watch_config"); ok {
		server.WatchConfig = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "show_layers"); ok {
		cli.ShowLayers = val
	}
}

// sanitize replaces values that would break the keyboard with defaults.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Keyboard.IndentUnit == "" {
		c.Keyboard.IndentUnit = def.Keyboard.IndentUnit
	}
	if c.Keyboard.RepeatIntervalMs <= 0 {
		c.Keyboard.RepeatIntervalMs = def.Keyboard.RepeatIntervalMs
	}
	if len(c.Keyboard.Languages) == 0 {
		log.Warnf("No languages configured, using %v", def.Keyboard.Languages)
		c.Keyboard.Languages = def.Keyboard.Languages
	}
	if c.Suggest.Limit <= 0 {
		c.Suggest.Limit = def.Suggest.Limit
	}
	if c.Suggest.CacheSize < 0 {
		c.Suggest.CacheSize = 0
	}
	if c.Server.MaxContext <= 0 {
		c.Server.MaxContext = def.Server.MaxContext
	}
	if c.CLI.DefaultLimit <= 0 || c.CLI.DefaultLimit > 9 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
}

// SessionSettings returns the runtime tunables of an input session.
func (c *Config) SessionSettings() session.Settings {
	return session.Settings{
		IndentUnit:   c.Keyboard.IndentUnit,
		SuggestLimit: c.Suggest.Limit,
		FoldCase:     c.Suggest.FoldCase,
		CacheSize:    c.Suggest.CacheSize,
	}
}

// DictOptions returns the filters applied to every vocabulary.
func (c *Config) DictOptions() dictionary.Options {
	return dictionary.Options{
		MaxWords:  c.Dict.MaxWords,
		MinWeight: c.Dict.MinWeight,
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the suggestion values and saves to file
func (c *Config) Update(configPath string, limit *int, foldCase *bool, languages []string) error {
	if limit != nil {
		c.Suggest.Limit = *limit
	}
	if foldCase != nil {
		c.Suggest.FoldCase = *foldCase
	}
	if languages != nil {
		c.Keyboard.Languages = languages
	}
	c.sanitize()
	return SaveConfig(c, configPath)
}
