package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"hyakrun.io/core"
)

type ProfileConfigFlags struct {
	Help bool   `short:"h" long:"help" description:"Show this help message"`
	Name string `short:"p" long:"profile" description:"profile name" default:"default"`
}

type ProfileCommand struct {
	Config ProfileConfigFlags `group:"Configuration Options"`
	Save   ProfileSaveCommand `command:"save"`
	Show   ProfileShowCommand `command:"show"`
	List   ProfileListCommand `command:"list"`
}

type ProfileSaveCommand struct {
	Config        ProfileConfigFlags `group:"Configuration Options" hidden:"true"`
	SubmitCommand string             `long:"submit-command" description:"scheduler submit command"`
	Launcher      string             `long:"launcher" description:"process launcher binary"`
	Shell         string             `long:"shell" description:"shell used to evaluate the job command"`
	Modules       []string           `short:"m" long:"module" description:"environment module loaded before each launch (repeatable)"`
}

type ProfileShowCommand struct {
	Config ProfileConfigFlags `group:"Configuration Options" hidden:"true"`
}

type ProfileListCommand struct {
	Config ProfileConfigFlags `group:"Configuration Options" hidden:"true"`
}

var profileCommand ProfileCommand

func (x *ProfileCommand) Execute(args []string) error {
	if x.Config.Help {
		return core.CreateHelpErr()
	}
	return nil
}

func (x *ProfileSaveCommand) Execute(args []string) error {
	if x.Config.Help {
		return core.CreateHelpErr()
	}
	config, _ := core.ReadConfig()
	if config == nil {
		config = make(core.Config)
	}
	profile := config[x.Config.Name]
	if len(x.SubmitCommand) > 0 {
		profile.SubmitCommand = x.SubmitCommand
	}
	if len(x.Launcher) > 0 {
		profile.Launcher = x.Launcher
	}
	if len(x.Shell) > 0 {
		profile.Shell = x.Shell
	}
	if x.Modules != nil {
		profile.Modules = x.Modules
	}
	config[x.Config.Name] = profile
	if err := core.WriteConfig(config); err != nil {
		return errors.New("profile: unable to write config file")
	}
	return nil
}

func (x *ProfileShowCommand) Execute(args []string) error {
	if x.Config.Help {
		return core.CreateHelpErr()
	}
	profile := core.GetProfile(x.Config.Name)
	out, err := json.MarshalIndent(profile, "", "	")
	if err != nil {
		return errors.New("profile: " + err.Error())
	}
	fmt.Println(string(out))
	return nil
}

func (x *ProfileListCommand) Execute(args []string) error {
	if x.Config.Help {
		return core.CreateHelpErr()
	}
	config, err := core.ReadConfig()
	if err != nil {
		fmt.Println("default")
		return nil
	}
	for name := range config {
		fmt.Println(name)
	}
	return nil
}

func init() {
	parser.AddCommand("profile",
		"Manage launcher profiles",
		"Save and inspect named profiles holding the scheduler submit "+
			"command, process launcher, shell, and default environment "+
			"modules.",
		&profileCommand)
}
