package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/fread/envelope"
	"github.com/bjaus/fread/query"
	"github.com/bjaus/fread/render"
)

type mailOptions struct {
	templates envelope.Templates
	format    string
	where     string
}

func newMailCmd(a *app) *cobra.Command {
	var opts mailOptions
	cmd := &cobra.Command{
		Use:   "mail <path>",
		Short: "Wrap each record into a message and print it",
		Long: `The mail command reads a delimited file and builds one message per record
from Go templates. Template data is the record: {{.Get "Name"}} reads a
column and {{.}} prints the whole record. Messages go to stdout.

Example:
  fread mail grades.csv
  fread mail grades.csv --subject 'Grade {{.Get "Grade"}}' --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMail(a, cmd, opts, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.templates.From, "from", "", "Sender address")
	f.StringVar(&opts.templates.To, "to", "", "Recipient template")
	f.StringVar(&opts.templates.Subject, "subject", "", "Subject template")
	f.StringVar(&opts.templates.Body, "body", "", "Body template")
	f.StringVarP(&opts.format, "format", "o", "", "Message format: fields, json, jsonl, yaml, env, plain, go-template=<tmpl>")
	f.StringVar(&opts.where, "where", "", "Only mail records matching a jq expression")
	return cmd
}

func runMail(a *app, cmd *cobra.Command, opts mailOptions, path string) error {
	cfg := a.cfg.Mail
	tmpl := opts.templates
	if tmpl.From == "" {
		tmpl.From = cfg.From
	}
	if tmpl.To == "" {
		tmpl.To = cfg.To
	}
	if tmpl.Subject == "" {
		tmpl.Subject = cfg.Subject
	}
	if tmpl.Body == "" {
		tmpl.Body = cfg.Body
	}
	if opts.format == "" {
		opts.format = cfg.Format
	}
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if !render.IsSupported[envelope.Message](format) {
		return fmt.Errorf("%w: messages cannot be written as %q", render.ErrUnsupportedFormat, format)
	}

	builder, err := envelope.NewBuilder(tmpl)
	if err != nil {
		return err
	}

	res, err := a.dispatcher().ReadFile(path)
	if err != nil {
		return err
	}
	records, ok := res.Records()
	if !ok {
		return errors.New("mail needs a delimited file")
	}
	if opts.where != "" {
		filter, err := query.Compile(opts.where)
		if err != nil {
			return err
		}
		if records, err = filter.Apply(records); err != nil {
			return err
		}
	}

	sender := envelope.ConsoleSender{W: cmd.OutOrStdout(), Format: format}
	n, err := builder.Send(sender, records)
	if err != nil {
		return err
	}
	a.logger.Info("messages sent", "path", path, "count", n)
	return nil
}
