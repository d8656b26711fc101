package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/pavl"
	"github.com/npillmayer/pavl/workload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

func stats(c *cli.Context) error {
	s, err := loadScript(c)
	if err != nil {
		return err
	}
	collector := pavl.NewCollector("pavl")
	for _, b := range pavl.Backends() {
		res, err := workload.Run(s, b)
		if err != nil {
			return err
		}
		collector.Add(b.String(), res.Tree)
	}
	reg := prometheus.NewRegistry()
	if err := reg.Register(collector); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	t := newTable(c.App.Writer, "arena statistics")
	t.AppendHeader(table.Row{"metric", "backend", "value"})
	for _, mf := range families {
		name := strings.TrimPrefix(mf.GetName(), "pavl_tree_")
		for _, m := range mf.GetMetric() {
			backend := ""
			for _, l := range m.GetLabel() {
				if l.GetName() == "backend" {
					backend = l.GetValue()
				}
			}
			t.AppendRow(table.Row{name, backend, int64(m.GetGauge().GetValue())})
		}
	}
	t.SortBy([]table.SortBy{{Name: "metric"}, {Name: "backend"}})
	t.Render()
	return nil
}

func init() {
	commands = append(commands, &cli.Command{
		Name:      "stats",
		Usage:     "replay a workload against every backend and report space usage",
		ArgsUsage: "FILE",
		Action:    stats,
	})
}
