package core

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Environment variables the scheduler sets inside an allocation.
const (
	NodeFileEnv  = "PBS_NODEFILE"
	SubmitDirEnv = "PBS_O_WORKDIR"
)

// NodeList is the node-assignment file contents: one hostname per
// allocated core slot, repeated once per slot on that host.
type NodeList []string

// ReadNodeFile loads the scheduler-populated node list. Blank lines are
// skipped; an empty file is a valid empty allocation.
func ReadNodeFile(path string) (NodeList, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	nodes := NodeList{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		host := strings.TrimSpace(scanner.Text())
		if len(host) == 0 {
			continue
		}
		nodes = append(nodes, host)
	}
	return nodes, scanner.Err()
}

// Procs is the total processor count: one slot per line.
func (n NodeList) Procs() int {
	return len(n)
}

// Hosts returns the distinct hostnames, sorted.
func (n NodeList) Hosts() []string {
	hosts := make([]string, 0, len(n.Slots()))
	for host := range n.Slots() {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

// Slots maps each distinct host to the number of core slots assigned on it.
func (n NodeList) Slots() map[string]int {
	slots := map[string]int{}
	for _, host := range n {
		slots[host]++
	}
	return slots
}

// Utilization renders the per-node breakdown, one "host:slots" line per
// distinct host in sorted order.
func (n NodeList) Utilization() []string {
	slots := n.Slots()
	lines := make([]string, 0, len(slots))
	for _, host := range n.Hosts() {
		lines = append(lines, host+":"+strconv.Itoa(slots[host]))
	}
	return lines
}
