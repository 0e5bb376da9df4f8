package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// AppName names the config and data directories.
const AppName = "wordkey"

// ProfileExtensions are the file types a profile directory may hold.
var ProfileExtensions = []string{".toml", ".yaml", ".yml"}

// PathResolver finds the directories wordkey reads from.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver inspects the running binary and the user's environment.
func NewPathResolver() (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		configDir:     platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", execDir, pr.configDir)
	return pr, nil
}

func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, ".config", AppName)
	}
}

// ConfigDir returns the platform config directory.
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// ExecutableDir returns the directory of the binary.
func (pr *PathResolver) ExecutableDir() string {
	return pr.executableDir
}

// ProfileDir resolves the directory holding extra language profiles.
// Candidates in order: configured (absolute, or relative to the config dir,
// the binary and the working directory), then <config>/profiles and
// <binary>/profiles. It returns "" when none holds a profile file.
func (pr *PathResolver) ProfileDir(configured string) string {
	for _, dir := range pr.profileDirCandidates(configured) {
		if isProfileDir(dir) {
			log.Debugf("Found profile directory: %s", dir)
			return dir
		}
		log.Debugf("Profile directory candidate not valid: %s", dir)
	}
	return ""
}

func (pr *PathResolver) profileDirCandidates(configured string) []string {
	var candidates []string
	if configured != "" {
		if filepath.IsAbs(configured) {
			candidates = append(candidates, configured)
		} else {
			candidates = append(candidates,
				filepath.Join(pr.configDir, configured),
				filepath.Join(pr.executableDir, configured))
			if cwd, err := os.Getwd(); err == nil {
				candidates = append(candidates, filepath.Join(cwd, configured))
			}
		}
	}
	return append(candidates,
		filepath.Join(pr.configDir, "profiles"),
		filepath.Join(pr.executableDir, "profiles"))
}

func isProfileDir(dir string) bool {
	if !IsDir(dir) {
		return false
	}
	files, err := ListFiles(dir, ProfileExtensions...)
	return err == nil && len(files) > 0
}

// RuntimeInfo returns debug information about the environment.
func (pr *PathResolver) RuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	info := map[string]string{
		"executable_dir": pr.executableDir,
		"current_dir":    cwd,
		"home_dir":       pr.homeDir,
		"config_dir":     pr.configDir,
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
	}
	for _, env := range []string{"HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(env); value != "" {
			info["env_"+strings.ToLower(env)] = value
		}
	}
	return info
}
