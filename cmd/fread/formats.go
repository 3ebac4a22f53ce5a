package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/fread/render"
)

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List readable file types and output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFormats(a, cmd)
		},
	}
}

func runFormats(a *app, cmd *cobra.Command) error {
	var exts []string
	for _, r := range a.dispatcher().Readers() {
		if e, ok := r.(interface{ Ext() string }); ok {
			exts = append(exts, e.Ext())
		}
	}
	records := make([]string, 0, len(render.Formats())+1)
	for _, f := range render.Formats() {
		records = append(records, f.String())
	}
	records = append(records, "go-template=<tmpl>")
	trees := make([]string, 0, len(render.TreeFormats()))
	for _, f := range render.TreeFormats() {
		trees = append(trees, f.String())
	}

	out := cmd.OutOrStdout()
	_, err := fmt.Fprintf(out, "files:   %s\nrecords: %s\ntrees:   %s\n",
		strings.Join(exts, " "), strings.Join(records, " "), strings.Join(trees, " "))
	return err
}
