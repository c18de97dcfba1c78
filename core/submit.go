package core

import (
	"errors"
	"os/exec"
	"regexp"
	"strings"
)

// Torque prints "12345.master.domain", Slurm "Submitted batch job 12345";
// the leading digits are the job id either way.
var jobIDPattern = regexp.MustCompile(`[0-9]+`)

// SubmitScript hands a rendered job script to the scheduler's submit
// command and returns the job id parsed from its output.
func SubmitScript(command, filename string) (string, error) {
	out, err := exec.Command(command, filename).Output()
	if err != nil {
		return "", errors.New(command + ": " + err.Error())
	}
	id := jobIDPattern.FindString(strings.TrimSpace(string(out)))
	if len(id) == 0 {
		return "", errors.New(command + ": no job id in output: " +
			strings.TrimSpace(string(out)))
	}
	return id, nil
}
