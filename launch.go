package main

import (
	"errors"
	"os"

	"hyakrun.io/core"
	"hyakrun.io/logger"
)

type LaunchCommand struct {
	Help      bool     `short:"h" long:"help" description:"Show this help message"`
	NumProcs  int      `short:"n" long:"np" description:"Worker process count handed to the launcher (default 16)"`
	Launcher  string   `long:"launcher" description:"Process launcher binary"`
	Modules   []string `short:"m" long:"module" description:"Environment module to load before the launch (repeatable)"`
	Chdir     string   `short:"D" long:"chdir" description:"Working directory for the launch; defaults to $PBS_O_WORKDIR"`
	JobFile   string   `short:"f" long:"job" description:"HCL job definition file"`
	Profile   string   `short:"p" long:"profile" description:"Saved profile name" default:"default"`
	Propagate bool     `long:"propagate-status" description:"Exit non-zero when the launcher fails instead of masking it"`
	Args      struct {
		Program []string `positional-arg-name:"program" description:"Program and arguments handed to the launcher"`
	} `positional-args:"true"`
}

var launchCommand LaunchCommand

// launchRunner is swapped out by tests.
var launchRunner core.Runner = core.ShellRunner

// Execute runs the job body inside a scheduler allocation: utilization
// report, environment modules, directory restore, then the launcher at
// the requested width. The launcher's outcome never fails the job unless
// --propagate-status asks for it.
func (x *LaunchCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}

	profile := core.GetProfile(x.Profile)
	spec := core.DefaultJobSpec()
	spec.Launch.Launcher = profile.Launcher
	spec.Modules = profile.Modules
	if len(x.JobFile) > 0 {
		if err := core.LoadJobFile(x.JobFile, &spec); err != nil {
			return errors.New("launch: " + err.Error())
		}
	}
	// flags override the profile and the job file
	if x.NumProcs > 0 {
		spec.Launch.NumProcs = x.NumProcs
	}
	if len(x.Launcher) > 0 {
		spec.Launch.Launcher = x.Launcher
	}
	if x.Modules != nil {
		spec.Modules = x.Modules
	}
	if len(x.Args.Program) > 0 {
		spec.Launch.Program = x.Args.Program
	}
	if len(x.Chdir) > 0 {
		spec.Workdir = x.Chdir
	} else if dir := os.Getenv(core.SubmitDirEnv); len(dir) > 0 {
		spec.Workdir = dir
	}

	// Utilization report from the scheduler's node-assignment file.
	// A missing or unreadable file reports an empty allocation; the
	// launch still proceeds at its requested width.
	nodes := core.NodeList{}
	if path := os.Getenv(core.NodeFileEnv); len(path) > 0 {
		if val, err := core.ReadNodeFile(path); err != nil {
			logger.WarningPrintf("launch: cannot read node file: %v\n", err)
		} else {
			nodes = val
		}
	} else {
		logger.WarningPrintf("launch: %s not set\n", core.NodeFileEnv)
	}
	printReport(nodes)

	command := spec.JobCommand()
	logger.DebugPrintf("launch: %s\n", command)
	if err := launchRunner(profile.Shell, command); err != nil {
		logger.ErrorPrintf("launch: launcher failed: %v\n", err)
		if x.Propagate {
			return errors.New("launch: " + err.Error())
		}
	}
	return nil
}

func init() {
	parser.AddCommand("launch",
		"Run a batch job body",
		"Run the job body inside a scheduler allocation: report the "+
			"granted nodes, load environment modules, restore the "+
			"submission directory, and start the process launcher.",
		&launchCommand)
}
