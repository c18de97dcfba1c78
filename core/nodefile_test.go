package core

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeNodeFile(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodefile")
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadNodeFileCounts(t *testing.T) {
	path := writeNodeFile(t, []string{
		"n0123", "n0123", "n0123",
		"n0124", "n0124",
		"n0125",
	})
	nodes, err := ReadNodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := nodes.Procs(), 6; got != want {
		t.Errorf("got %d processors, wanted %d", got, want)
	}
	if got, want := nodes.Hosts(), []string{"n0123", "n0124", "n0125"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, wanted %#v", got, want)
	}
	want := map[string]int{"n0123": 3, "n0124": 2, "n0125": 1}
	if got := nodes.Slots(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, wanted %#v", got, want)
	}
}

func TestUtilizationSingleNode(t *testing.T) {
	lines := make([]string, 16)
	for i := range lines {
		lines[i] = "n0123"
	}
	nodes, err := ReadNodeFile(writeNodeFile(t, lines))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"n0123:16"}
	if got := nodes.Utilization(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, wanted %#v", got, want)
	}
}

func TestEmptyNodeFile(t *testing.T) {
	nodes, err := ReadNodeFile(writeNodeFile(t, nil))
	if err != nil {
		t.Fatal(err)
	}
	if nodes.Procs() != 0 {
		t.Errorf("got %d processors, wanted 0", nodes.Procs())
	}
	if len(nodes.Hosts()) != 0 {
		t.Errorf("got %d nodes, wanted 0", len(nodes.Hosts()))
	}
	if len(nodes.Utilization()) != 0 {
		t.Errorf("got %#v, wanted no utilization lines", nodes.Utilization())
	}
}

func TestMissingNodeFile(t *testing.T) {
	if _, err := ReadNodeFile(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing node file")
	}
}

func TestNodeFileSkipsBlankLines(t *testing.T) {
	path := writeNodeFile(t, []string{"n0123", "", "  ", "n0123"})
	nodes, err := ReadNodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := nodes.Procs(), 2; got != want {
		t.Errorf("got %d processors, wanted %d", got, want)
	}
}
