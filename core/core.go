package core

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/jessevdk/go-flags"
)

const (
	HyakrunConfigPath      = "/.config/hyakrun/"
	HyakrunConfigFilename  = "config.json"
	HyakrunConfigFilePerms = 0600
)

const HyakrunConfigEnv = "HYAKRUN_CONFIG"

// Profile holds the site-specific pieces of a launch: which command hands
// a script to the scheduler, which launcher fans the program out, which
// shell evaluates the job command, and the modules loaded before it runs.
/*
{
	"default": {
		"submit_command": "qsub",
		"launcher": "mpirun",
		"shell": "/bin/bash",
		"modules": ["icc_17-impi_2017", "anaconda2_4.4.0"]
	}
}
*/
type Profile struct {
	SubmitCommand string   `json:"submit_command"`
	Launcher      string   `json:"launcher"`
	Shell         string   `json:"shell"`
	Modules       []string `json:"modules"`
}

type Config map[string]Profile

// DefaultProfile matches the 16-core Hyak node class this tool grew up on.
func DefaultProfile() Profile {
	return Profile{
		SubmitCommand: "qsub",
		Launcher:      "mpirun",
		Shell:         "/bin/bash",
		Modules:       append([]string{}, DefaultModules...),
	}
}

// GetProfile resolves a named profile from the config file, falling back
// to the built-in defaults when the file or the entry is missing. Fields
// left empty in a saved profile keep their defaults.
func GetProfile(name string) Profile {
	profile := DefaultProfile()
	config, err := ReadConfig()
	if err != nil {
		return profile
	}
	saved, ok := config[name]
	if !ok {
		return profile
	}
	if len(saved.SubmitCommand) > 0 {
		profile.SubmitCommand = saved.SubmitCommand
	}
	if len(saved.Launcher) > 0 {
		profile.Launcher = saved.Launcher
	}
	if len(saved.Shell) > 0 {
		profile.Shell = saved.Shell
	}
	if saved.Modules != nil {
		profile.Modules = saved.Modules
	}
	return profile
}

func fileExist(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Build path for config file
// Set from environment or use backup under $HOME
// Use current directory as last resort
func getConfigPath() string {
	configPath := os.Getenv(HyakrunConfigEnv)
	if len(configPath) > 0 {
		return configPath
	}
	backupPath := os.Getenv("HOME") + HyakrunConfigPath
	if err := os.MkdirAll(backupPath, 0744); err != nil {
		return HyakrunConfigFilename
	}
	return backupPath + HyakrunConfigFilename
}

func WriteConfig(config Config) error {
	configFile := getConfigPath()
	file, err := json.MarshalIndent(config, "", "	")
	if err != nil {
		return err
	}
	// Ensure config file uses proper permissions
	os.Chmod(configFile, HyakrunConfigFilePerms)
	return os.WriteFile(configFile, file, HyakrunConfigFilePerms)
}

func ReadConfig() (Config, error) {
	filename := getConfigPath()
	if !fileExist(filename) {
		return Config{}, errors.New("cannot read hyakrun config")
	}
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	var config Config
	if err := json.Unmarshal(bytes, &config); err != nil {
		return Config{}, err
	}
	// Check if any profiles were found in config file
	if len(config) == 0 {
		return Config{}, errors.New("invalid hyakrun config")
	}
	return config, nil
}

func CreateHelpErr() error {
	err := flags.Error{
		Type:    flags.ErrHelp,
		Message: "show help message",
	}
	return &err
}
