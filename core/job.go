package core

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Defaults mirror the resource request the launcher was written for:
// one 16-core node, 10 GB, half an hour, merged output streams.
const (
	DefaultJobName      = "hyak_test"
	DefaultNodes        = 1
	DefaultTasksPerNode = 16
	DefaultNodeFeature  = "16core"
	DefaultMemory       = "10gb"
	DefaultWalltime     = "00:30:00"
	DefaultNumProcs     = 16
)

// DefaultModules name a compiler toolchain build and a Python
// distribution build. Opaque version strings as far as hyakrun cares.
var DefaultModules = []string{"icc_17-impi_2017", "anaconda2_4.4.0"}

// JobSpec is the resource request plus everything the job body needs.
type JobSpec struct {
	Name         string
	Nodes        int
	TasksPerNode int
	Feature      string
	Memory       string
	Walltime     string
	JoinStreams  bool
	Modules      []string
	Workdir      string
	Launch       LaunchSpec
}

// LaunchSpec describes the process-launcher invocation. NumProcs is the
// requested width; it is never derived from the allocation.
type LaunchSpec struct {
	Launcher string
	NumProcs int
	Program  []string
}

func DefaultJobSpec() JobSpec {
	return JobSpec{
		Name:         DefaultJobName,
		Nodes:        DefaultNodes,
		TasksPerNode: DefaultTasksPerNode,
		Feature:      DefaultNodeFeature,
		Memory:       DefaultMemory,
		Walltime:     DefaultWalltime,
		JoinStreams:  true,
		Modules:      append([]string{}, DefaultModules...),
		Launch: LaunchSpec{
			Launcher: "mpirun",
			NumProcs: DefaultNumProcs,
			Program:  []string{"python", "hyak_test.py"},
		},
	}
}

var (
	memBase = regexp.MustCompile(`^[0-9]+`)
	memMag  = regexp.MustCompile(`(?i)[kmgt]b?$`)
)

// ParseMemory decodes a scheduler memory request like "10gb" or "512mb"
// into whole gigabytes, rounding up.
func ParseMemory(req string) (int, error) {
	match := memBase.FindString(req)
	if len(match) == 0 {
		return 0, errors.New("invalid mem request: " + req)
	}
	base, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return 0, errors.New("invalid mem request: " + req)
	}
	var bytes int64
	switch mag := strings.ToLower(memMag.FindString(req)); {
	case strings.HasPrefix(mag, "k"):
		bytes = base * 1024
	case strings.HasPrefix(mag, "m"):
		bytes = base * 1024 * 1024
	case strings.HasPrefix(mag, "g"):
		bytes = base * 1024 * 1024 * 1024
	case strings.HasPrefix(mag, "t"):
		bytes = base * 1024 * 1024 * 1024 * 1024
	default:
		// bare number is megabytes, matching the scheduler default
		bytes = base * 1024 * 1024
	}
	return int(math.Ceil(float64(bytes) / float64(1024*1024*1024))), nil
}

var walltimeRe = regexp.MustCompile(`^([0-9]+:)?[0-5]?[0-9]:[0-5][0-9]$`)

// ValidWalltime reports whether req looks like [HH:]MM:SS.
func ValidWalltime(req string) bool {
	return walltimeRe.MatchString(req)
}
