package core

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DirectivePrefix marks scheduler directive lines in a job script.
const DirectivePrefix = "PBS"

// Directives renders the resource request as the scheduler directive
// block consumed before the script body runs.
func (j JobSpec) Directives() []string {
	lines := []string{
		"#PBS -N " + j.Name,
		fmt.Sprintf("#PBS -l nodes=%d:ppn=%d,feature=%s",
			j.Nodes, j.TasksPerNode, j.Feature),
		"#PBS -l mem=" + j.Memory,
		"#PBS -l walltime=" + j.Walltime,
	}
	if j.JoinStreams {
		lines = append(lines, "#PBS -j oe")
	}
	return lines
}

// LaunchLine is the in-job hyakrun invocation carrying the launch
// request into the allocation.
func (j JobSpec) LaunchLine() string {
	args := []string{"hyakrun", "launch", "--np",
		strconv.Itoa(j.Launch.NumProcs)}
	if len(j.Launch.Launcher) > 0 && j.Launch.Launcher != "mpirun" {
		args = append(args, "--launcher", j.Launch.Launcher)
	}
	for _, module := range j.Modules {
		args = append(args, "--module", module)
	}
	args = append(args, "--")
	args = append(args, j.Launch.Program...)
	return strings.Join(args, " ")
}

// Script assembles the full job script: shebang, directive block, launch
// body. The trailing exit keeps the job's own status green no matter what
// the launch step did.
func (j JobSpec) Script() []string {
	lines := []string{"#!/bin/bash"}
	lines = append(lines, j.Directives()...)
	lines = append(lines, j.LaunchLine(), "exit 0")
	return lines
}

func (j JobSpec) WriteScript(filename string) error {
	script := strings.Join(j.Script(), "\n") + "\n"
	return os.WriteFile(filename, []byte(script), 0755)
}

// JobScript is a parsed job script file: its shell, the raw scheduler
// directives, and the remaining body.
type JobScript struct {
	Shell      string
	Directives []string
	Body       []byte
}

// ParseJobScript splits a job script into shebang, "#<directive> ..."
// lines, and body. Directive lines are only honored in the header, before
// the first command.
func ParseJobScript(directive, filename string) (JobScript, error) {
	file, err := os.Open(filename)
	if err != nil {
		return JobScript{}, err
	}
	defer file.Close()

	js := JobScript{Shell: "/bin/sh"}
	marker := "#" + directive
	header := true
	first := true

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if strings.HasPrefix(line, "#!") {
				js.Shell = strings.TrimSpace(line[2:])
				continue
			}
		}
		trimmed := strings.TrimSpace(line)
		if header {
			if strings.HasPrefix(trimmed, marker) {
				js.Directives = append(js.Directives,
					strings.TrimSpace(trimmed[len(marker):]))
				continue
			}
			if len(trimmed) == 0 || strings.HasPrefix(trimmed, "#") {
				// comments and blanks do not end the header
				continue
			}
			header = false
		}
		js.Body = append(js.Body, line...)
		js.Body = append(js.Body, '\n')
	}
	return js, scanner.Err()
}

// ApplyDirectives folds parsed directive lines into the spec. Unknown
// options are ignored rather than rejected, matching scheduler behavior
// for options this tool does not model.
func (j *JobSpec) ApplyDirectives(directives []string) error {
	for _, directive := range directives {
		fields := strings.Fields(directive)
		if len(fields) < 1 {
			continue
		}
		opt := fields[0]
		arg := ""
		if len(fields) > 1 {
			arg = fields[1]
		}
		switch opt {
		case "-N":
			if len(arg) == 0 {
				return errors.New("directive -N requires a job name")
			}
			j.Name = arg
		case "-l":
			if err := j.applyResourceList(arg); err != nil {
				return err
			}
		case "-j":
			j.JoinStreams = arg == "oe" || arg == "eo"
		}
	}
	return nil
}

// applyResourceList handles "-l" requests of the form
// nodes=1:ppn=16,feature=16core or mem=10gb,walltime=00:30:00.
func (j *JobSpec) applyResourceList(list string) error {
	for _, req := range strings.Split(list, ",") {
		if len(req) == 0 {
			continue
		}
		// nodes carries colon-separated subrequests
		for _, part := range strings.Split(req, ":") {
			kv := strings.SplitN(part, "=", 2)
			if len(kv) != 2 {
				continue
			}
			key, val := kv[0], kv[1]
			switch key {
			case "nodes":
				n, err := strconv.Atoi(val)
				if err != nil {
					return errors.New("invalid nodes request: " + val)
				}
				j.Nodes = n
			case "ppn":
				n, err := strconv.Atoi(val)
				if err != nil {
					return errors.New("invalid ppn request: " + val)
				}
				j.TasksPerNode = n
			case "feature":
				j.Feature = val
			case "mem":
				if _, err := ParseMemory(val); err != nil {
					return err
				}
				j.Memory = val
			case "walltime":
				if !ValidWalltime(val) {
					return errors.New("invalid walltime request: " + val)
				}
				j.Walltime = val
			}
		}
	}
	return nil
}
