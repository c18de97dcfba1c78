package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"hyakrun.io/core"
	"hyakrun.io/logger"
)

type SubmitCommand struct {
	Help     bool   `short:"h" long:"help" description:"Show this help message"`
	JobName  string `short:"N" long:"job-name" description:"Name for the job allocation"`
	Nodes    int    `long:"nodes" description:"Node count to request (default 1)"`
	Ppn      int    `long:"ppn" description:"Processors per node to request (default 16)"`
	Feature  string `long:"feature" description:"Node feature tag to request (default 16core)"`
	Mem      string `long:"mem" description:"Memory per node, e.g. 10gb"`
	Walltime string `short:"t" long:"walltime" description:"Wall-clock limit, [HH:]MM:SS"`
	JobFile  string `short:"f" long:"job" description:"HCL job definition file"`
	Profile  string `short:"p" long:"profile" description:"Saved profile name" default:"default"`
	Render   bool   `long:"render" description:"Print the job script instead of submitting it"`
	Script   string `short:"o" long:"script" description:"Write the rendered job script to this path and keep it"`
	Args     struct {
		JobScript string `positional-arg-name:"jobscript" description:"Existing job script to submit"`
	} `positional-args:"true"`
}

var submitCommand SubmitCommand

// Execute builds the resource request (defaults, then job file, then an
// existing script's directives, with CLI flags taking precedence) and
// hands a job script to the scheduler's submit command.
func (x *SubmitCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}

	profile := core.GetProfile(x.Profile)
	spec := core.DefaultJobSpec()
	spec.Launch.Launcher = profile.Launcher
	spec.Modules = profile.Modules
	if len(x.JobFile) > 0 {
		if err := core.LoadJobFile(x.JobFile, &spec); err != nil {
			return errors.New("submit: " + err.Error())
		}
	}
	if len(x.Args.JobScript) > 0 {
		parsed, err := core.ParseJobScript(core.DirectivePrefix, x.Args.JobScript)
		if err != nil {
			return errors.New("submit: " + err.Error())
		}
		if err := spec.ApplyDirectives(parsed.Directives); err != nil {
			return errors.New("submit: " + x.Args.JobScript + ": " + err.Error())
		}
	}
	if err := x.applyFlags(&spec); err != nil {
		return err
	}
	logger.DebugObj("submit spec", spec)

	if x.Render {
		fmt.Println(strings.Join(spec.Script(), "\n"))
		return nil
	}

	// An existing script goes to the scheduler untouched; its directives
	// above were only absorbed for validation and logging.
	scriptFile := x.Args.JobScript
	if len(scriptFile) == 0 {
		if len(x.Script) > 0 {
			scriptFile = x.Script
		} else {
			tmp, err := os.CreateTemp("", spec.Name+"-*.pbs")
			if err != nil {
				return errors.New("submit: " + err.Error())
			}
			tmp.Close()
			scriptFile = tmp.Name()
			defer os.Remove(scriptFile)
		}
		if err := spec.WriteScript(scriptFile); err != nil {
			return errors.New("submit: " + err.Error())
		}
	}

	id, err := core.SubmitScript(profile.SubmitCommand, scriptFile)
	if err != nil {
		return errors.New("submit: " + err.Error())
	}
	fmt.Printf("Your job %s (\"%s\") has been submitted\n", id, spec.Name)
	return nil
}

func (x *SubmitCommand) applyFlags(spec *core.JobSpec) error {
	if len(x.JobName) > 0 {
		spec.Name = x.JobName
	}
	if x.Nodes > 0 {
		spec.Nodes = x.Nodes
	}
	if x.Ppn > 0 {
		spec.TasksPerNode = x.Ppn
	}
	if len(x.Feature) > 0 {
		spec.Feature = x.Feature
	}
	if len(x.Mem) > 0 {
		if _, err := core.ParseMemory(x.Mem); err != nil {
			return errors.New("submit: " + err.Error())
		}
		spec.Memory = x.Mem
	}
	if len(x.Walltime) > 0 {
		if !core.ValidWalltime(x.Walltime) {
			return errors.New("submit: invalid walltime request: " + x.Walltime)
		}
		spec.Walltime = x.Walltime
	}
	return nil
}

func init() {
	parser.AddCommand("submit",
		"Submit a batch job",
		"Render a job script from the resource request and hand it to "+
			"the scheduler's submit command, or submit an existing "+
			"job script.",
		&submitCommand)
}
