package core

import (
	"errors"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Job definition file, HCL:
/*
job "msd_sweep" {
  nodes    = 1
  ppn      = 16
  mem      = "10gb"
  walltime = "00:30:00"
  modules  = ["icc_17-impi_2017", "anaconda2_4.4.0"]
  workdir  = env.PBS_O_WORKDIR

  launch {
    procs   = 16
    program = ["python", "hyak_test.py"]
  }
}
*/
type jobFile struct {
	Jobs []jobBlock `hcl:"job,block"`
}

type jobBlock struct {
	Name         string       `hcl:"name,label"`
	Nodes        *int         `hcl:"nodes,optional"`
	TasksPerNode *int         `hcl:"ppn,optional"`
	Feature      *string      `hcl:"feature,optional"`
	Memory       *string      `hcl:"mem,optional"`
	Walltime     *string      `hcl:"walltime,optional"`
	JoinStreams  *bool        `hcl:"join_streams,optional"`
	Modules      []string     `hcl:"modules,optional"`
	Workdir      *string      `hcl:"workdir,optional"`
	Launch       *launchBlock `hcl:"launch,block"`
}

type launchBlock struct {
	Launcher *string  `hcl:"launcher,optional"`
	Procs    *int     `hcl:"procs,optional"`
	Program  []string `hcl:"program,optional"`
}

// evalContext exposes the process environment to job files as env.*,
// so a definition can say workdir = env.SCRATCH.
func evalContext() *hcl.EvalContext {
	envs := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		split := strings.SplitN(kv, "=", 2)
		if len(split) != 2 || len(split[0]) == 0 {
			continue
		}
		envs[split[0]] = cty.StringVal(split[1])
	}
	env := cty.MapValEmpty(cty.String)
	if len(envs) > 0 {
		env = cty.MapVal(envs)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}

// LoadJobFile decodes the first job block of an HCL definition file over
// the spec's current values.
func LoadJobFile(filename string, spec *JobSpec) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return errors.New("parse " + filename + ": " + diags.Error())
	}
	var config jobFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &config); diags.HasErrors() {
		return errors.New("decode " + filename + ": " + diags.Error())
	}
	if len(config.Jobs) == 0 {
		return errors.New(filename + ": no job block")
	}
	job := config.Jobs[0]

	spec.Name = job.Name
	if job.Nodes != nil {
		spec.Nodes = *job.Nodes
	}
	if job.TasksPerNode != nil {
		spec.TasksPerNode = *job.TasksPerNode
	}
	if job.Feature != nil {
		spec.Feature = *job.Feature
	}
	if job.Memory != nil {
		if _, err := ParseMemory(*job.Memory); err != nil {
			return err
		}
		spec.Memory = *job.Memory
	}
	if job.Walltime != nil {
		if !ValidWalltime(*job.Walltime) {
			return errors.New("invalid walltime request: " + *job.Walltime)
		}
		spec.Walltime = *job.Walltime
	}
	if job.JoinStreams != nil {
		spec.JoinStreams = *job.JoinStreams
	}
	if job.Modules != nil {
		spec.Modules = job.Modules
	}
	if job.Workdir != nil {
		spec.Workdir = *job.Workdir
	}
	if job.Launch != nil {
		if job.Launch.Launcher != nil {
			spec.Launch.Launcher = *job.Launch.Launcher
		}
		if job.Launch.Procs != nil {
			spec.Launch.NumProcs = *job.Launch.Procs
		}
		if job.Launch.Program != nil {
			spec.Launch.Program = job.Launch.Program
		}
	}
	return nil
}
