package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/pavl"
	"github.com/npillmayer/pavl/workload"
	"github.com/urfave/cli/v2"
)

var backendFlag = &cli.StringFlag{
	Name:    "backend",
	Aliases: []string{"b"},
	Usage:   "persistence backend: fatnode, pathcopy or boundedcopy (default: from script)",
}

func backendFor(c *cli.Context, s *workload.Script) (pavl.Backend, error) {
	if name := c.String("backend"); name != "" {
		return pavl.ParseBackend(name)
	}
	return s.BackendOf(), nil
}

func run(c *cli.Context) error {
	s, err := loadScript(c)
	if err != nil {
		return err
	}
	b, err := backendFor(c, s)
	if err != nil {
		return err
	}
	res, err := workload.Run(s, b)
	if err != nil {
		return err
	}
	ops := newTable(c.App.Writer, "operations ("+b.String()+")")
	ops.AppendHeader(table.Row{"#", "operation", "timestamp"})
	for i, a := range res.Applied {
		at := verdict(false, "missed")
		if a.OK {
			at = verdict(true, formatStamp(a.At))
		}
		ops.AppendRow(table.Row{i, a.Op.String(), at})
	}
	ops.Render()
	if len(res.Answers) == 0 {
		return nil
	}
	qs := newTable(c.App.Writer, "queries")
	qs.AppendHeader(table.Row{"query", "answer"})
	for _, a := range res.Answers {
		qs.AppendRow(table.Row{a.Query.String(), verdict(a.Found, a.String())})
	}
	qs.Render()
	return nil
}

func init() {
	commands = append(commands, &cli.Command{
		Name:      "run",
		Usage:     "replay a workload script and answer its queries",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{backendFlag},
		Action:    run,
	})
}
