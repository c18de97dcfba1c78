package core

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestScriptRender(t *testing.T) {
	want := []string{
		"#!/bin/bash",
		"#PBS -N hyak_test",
		"#PBS -l nodes=1:ppn=16,feature=16core",
		"#PBS -l mem=10gb",
		"#PBS -l walltime=00:30:00",
		"#PBS -j oe",
		"hyakrun launch --np 16" +
			" --module icc_17-impi_2017 --module anaconda2_4.4.0" +
			" -- python hyak_test.py",
		"exit 0",
	}
	got := DefaultJobSpec().Script()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, wanted %#v", got, want)
	}
}

func TestScriptRenderCustomLauncher(t *testing.T) {
	spec := DefaultJobSpec()
	spec.Launch.Launcher = "mpiexec"
	spec.Modules = nil
	spec.JoinStreams = false
	got := spec.Script()
	want := []string{
		"#!/bin/bash",
		"#PBS -N hyak_test",
		"#PBS -l nodes=1:ppn=16,feature=16core",
		"#PBS -l mem=10gb",
		"#PBS -l walltime=00:30:00",
		"hyakrun launch --np 16 --launcher mpiexec -- python hyak_test.py",
		"exit 0",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, wanted %#v", got, want)
	}
}

func TestWriteScript(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "job.pbs")
	if err := DefaultJobSpec().WriteScript(filename); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(filename)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("got mode %v, wanted 0755", info.Mode().Perm())
	}
}

func TestParseJobScript(t *testing.T) {
	script := strings.Join([]string{
		"#!/bin/bash",
		"#PBS -N msd_sweep",
		"# plain comment inside the header",
		"#PBS -l nodes=2:ppn=8,feature=28core",
		"#PBS -j oe",
		"date",
		"#PBS -l mem=99gb ignored after the header",
		"mpirun -np 16 python hyak_test.py",
	}, "\n")
	filename := filepath.Join(t.TempDir(), "job.pbs")
	if err := os.WriteFile(filename, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := ParseJobScript(DirectivePrefix, filename)
	if err != nil {
		t.Fatal(err)
	}
	if got.Shell != "/bin/bash" {
		t.Errorf("got shell %q, wanted /bin/bash", got.Shell)
	}
	wantDirectives := []string{
		"-N msd_sweep",
		"-l nodes=2:ppn=8,feature=28core",
		"-j oe",
	}
	if !reflect.DeepEqual(got.Directives, wantDirectives) {
		t.Errorf("got %#v, wanted %#v", got.Directives, wantDirectives)
	}
	if !strings.Contains(string(got.Body), "mpirun -np 16") {
		t.Errorf("body lost the launcher line: %q", got.Body)
	}
	if !strings.Contains(string(got.Body), "mem=99gb") {
		t.Errorf("directive after the header should stay in the body: %q", got.Body)
	}
}

func TestApplyDirectives(t *testing.T) {
	spec := DefaultJobSpec()
	directives := []string{
		"-N msd_sweep",
		"-l nodes=2:ppn=8,feature=28core",
		"-l mem=20gb,walltime=01:00:00",
		"-j oe",
	}
	if err := spec.ApplyDirectives(directives); err != nil {
		t.Fatal(err)
	}
	if spec.Name != "msd_sweep" {
		t.Errorf("got name %q", spec.Name)
	}
	if spec.Nodes != 2 || spec.TasksPerNode != 8 {
		t.Errorf("got nodes=%d ppn=%d, wanted 2/8", spec.Nodes, spec.TasksPerNode)
	}
	if spec.Feature != "28core" {
		t.Errorf("got feature %q", spec.Feature)
	}
	if spec.Memory != "20gb" || spec.Walltime != "01:00:00" {
		t.Errorf("got mem=%q walltime=%q", spec.Memory, spec.Walltime)
	}
	if !spec.JoinStreams {
		t.Error("wanted joined streams")
	}
}

func TestApplyDirectivesInvalid(t *testing.T) {
	spec := DefaultJobSpec()
	if err := spec.ApplyDirectives([]string{"-l walltime=sideways"}); err == nil {
		t.Error("expected error for invalid walltime")
	}
	if err := spec.ApplyDirectives([]string{"-l nodes=many"}); err == nil {
		t.Error("expected error for invalid node count")
	}
}

func TestApplyDirectivesIgnoresUnknown(t *testing.T) {
	spec := DefaultJobSpec()
	if err := spec.ApplyDirectives([]string{"-W umask=022", "-o /dev/null"}); err != nil {
		t.Errorf("unknown directives should be ignored: %v", err)
	}
}
