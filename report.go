package main

import (
	"errors"
	"fmt"
	"os"

	"hyakrun.io/core"
)

type ReportCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
	Args struct {
		NodeFile string `positional-arg-name:"nodefile" description:"Node-assignment file; defaults to $PBS_NODEFILE"`
	} `positional-args:"true"`
}

var reportCommand ReportCommand

func printReport(nodes core.NodeList) {
	fmt.Printf("Total processors: %d\n", nodes.Procs())
	fmt.Printf("Total nodes: %d\n", len(nodes.Hosts()))
	for _, line := range nodes.Utilization() {
		fmt.Println(line)
	}
}

func (x *ReportCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	path := x.Args.NodeFile
	if len(path) == 0 {
		path = os.Getenv(core.NodeFileEnv)
	}
	if len(path) == 0 {
		return errors.New("report: no nodefile given and " +
			core.NodeFileEnv + " not set")
	}
	nodes, err := core.ReadNodeFile(path)
	if err != nil {
		return errors.New("report: " + err.Error())
	}
	printReport(nodes)
	return nil
}

func init() {
	parser.AddCommand("report",
		"Print the allocation utilization report",
		"Read a scheduler node-assignment file and print the total "+
			"processor count, distinct node count, and per-node slot "+
			"breakdown.",
		&reportCommand)
}
