package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyakrun.io/core"
)

func TestSubmitFlagsOverrideSpec(t *testing.T) {
	spec := core.DefaultJobSpec()
	cmd := SubmitCommand{
		JobName:  "msd_sweep",
		Nodes:    2,
		Ppn:      28,
		Feature:  "28core",
		Mem:      "20gb",
		Walltime: "01:00:00",
	}
	require.NoError(t, cmd.applyFlags(&spec))

	assert.Equal(t, "msd_sweep", spec.Name)
	assert.Equal(t, 2, spec.Nodes)
	assert.Equal(t, 28, spec.TasksPerNode)
	assert.Equal(t, "28core", spec.Feature)
	assert.Equal(t, "20gb", spec.Memory)
	assert.Equal(t, "01:00:00", spec.Walltime)
}

func TestSubmitFlagsKeepDefaults(t *testing.T) {
	spec := core.DefaultJobSpec()
	cmd := SubmitCommand{}
	require.NoError(t, cmd.applyFlags(&spec))
	assert.Equal(t, core.DefaultJobSpec(), spec)
}

func TestSubmitFlagValidation(t *testing.T) {
	spec := core.DefaultJobSpec()

	cmd := SubmitCommand{Mem: "lots"}
	err := cmd.applyFlags(&spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mem")

	cmd = SubmitCommand{Walltime: "sideways"}
	err = cmd.applyFlags(&spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walltime")
}
