package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/pavl/workload"
	"github.com/urfave/cli/v2"
)

func compare(c *cli.Context) error {
	s, err := loadScript(c)
	if err != nil {
		return err
	}
	results, cmpErr := workload.Compare(s)
	t := newTable(c.App.Writer, "backend comparison")
	t.AppendHeader(table.Row{"backend", "versions", "nodes", "log entries", "copies"})
	for _, res := range results {
		st := res.Tree.Stats()
		t.AppendRow(table.Row{st.Backend, st.Versions, st.Nodes, st.LogEntries, st.Copies})
	}
	t.Render()
	if cmpErr != nil {
		fmt.Fprintln(c.App.Writer, verdict(false, cmpErr.Error()))
		return cmpErr
	}
	fmt.Fprintln(c.App.Writer, verdict(true, "all backends agree on every version"))
	return nil
}

func init() {
	commands = append(commands, &cli.Command{
		Name:      "compare",
		Usage:     "replay a workload against every backend and check they agree",
		ArgsUsage: "FILE",
		Action:    compare,
	})
}
