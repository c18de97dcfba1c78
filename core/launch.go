package core

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// CommandLine is the process-launcher invocation with the requested
// worker count.
func (l LaunchSpec) CommandLine() string {
	line := []string{l.Launcher, "-np", strconv.Itoa(l.NumProcs)}
	line = append(line, l.Program...)
	return strings.Join(line, " ")
}

// JobCommand assembles the job body: module loads, directory restore,
// launcher. Steps are joined with ";" so a failed module load or chdir
// does not stop the run.
func (j JobSpec) JobCommand() string {
	parts := []string{}
	for _, module := range j.Modules {
		parts = append(parts, "module load "+module)
	}
	if len(j.Workdir) > 0 {
		parts = append(parts, "cd "+j.Workdir)
	}
	parts = append(parts, j.Launch.CommandLine())
	return strings.Join(parts, "; ")
}

// Runner executes an assembled job command under a shell. Swapped out in
// tests.
type Runner func(shell, command string) error

// ShellRunner runs the job command under a login shell so the module
// system is available, with stderr folded into stdout ("-j oe").
func ShellRunner(shell, command string) error {
	cmd := exec.Command(shell, "-l", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stdout
	return cmd.Run()
}
