// Package envelope wraps records into simple messages and hands them to a
// [Sender]. There is no network transport; [ConsoleSender] prints them.
package envelope

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"slices"
	"text/template"

	"github.com/bjaus/fread"
	"github.com/bjaus/fread/render"
)

// Default templates. Template data is the [fread.Record] being wrapped.
const (
	DefaultFrom    = "teacher@school.com"
	DefaultTo      = `{{lower (.Get "Name")}}@school.com`
	DefaultSubject = "Your Grades Report"
	DefaultBody    = `Hello {{.Get "Name"}}, here are your grades: {{.}}`
)

// Message is a single outgoing envelope.
type Message struct {
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	Subject string `json:"subject" yaml:"subject"`
	Body    string `json:"body" yaml:"body"`
}

// New creates a message.
func New(from, to, subject, body string) Message {
	return Message{From: from, To: to, Subject: subject, Body: body}
}

// Pairs lists the envelope fields in header order so a message renders
// through [render.Fields] and [render.ENV].
func (m Message) Pairs() []render.KeyValue {
	return []render.KeyValue{
		{Key: "From", Value: m.From},
		{Key: "To", Value: m.To},
		{Key: "Subject", Value: m.Subject},
		{Key: "Body", Value: m.Body},
	}
}

// Templates holds the template text for each envelope field. From is used
// verbatim. Empty fields fall back to the defaults.
type Templates struct {
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// DefaultTemplates returns the built-in templates.
func DefaultTemplates() Templates {
	return Templates{
		From:    DefaultFrom,
		To:      DefaultTo,
		Subject: DefaultSubject,
		Body:    DefaultBody,
	}
}

// WithDefaults returns t with every empty field set to its default.
func (t Templates) WithDefaults() Templates {
	d := DefaultTemplates()
	if t.From == "" {
		t.From = d.From
	}
	if t.To == "" {
		t.To = d.To
	}
	if t.Subject == "" {
		t.Subject = d.Subject
	}
	if t.Body == "" {
		t.Body = d.Body
	}
	return t
}

// Builder turns records into messages.
type Builder struct {
	from    string
	to      *template.Template
	subject *template.Template
	body    *template.Template
}

// NewBuilder parses the templates. Parse failures wrap
// [render.ErrInvalidTemplate].
func NewBuilder(t Templates) (*Builder, error) {
	t = t.WithDefaults()
	b := &Builder{from: t.From}
	var err error
	if b.to, err = parse("to", t.To); err != nil {
		return nil, err
	}
	if b.subject, err = parse("subject", t.Subject); err != nil {
		return nil, err
	}
	if b.body, err = parse("body", t.Body); err != nil {
		return nil, err
	}
	return b, nil
}

func parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(render.TemplateFuncs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", render.ErrInvalidTemplate, name, err)
	}
	return tmpl, nil
}

// Build renders one message from rec.
func (b *Builder) Build(rec fread.Record) (Message, error) {
	to, err := execute(b.to, rec)
	if err != nil {
		return Message{}, err
	}
	subject, err := execute(b.subject, rec)
	if err != nil {
		return Message{}, err
	}
	body, err := execute(b.body, rec)
	if err != nil {
		return Message{}, err
	}
	return New(b.from, to, subject, body), nil
}

// BuildAll renders one message per record, stopping at the first failure.
func (b *Builder) BuildAll(records []fread.Record) ([]Message, error) {
	msgs := make([]Message, 0, len(records))
	for i, rec := range records {
		m, err := b.Build(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func execute(tmpl *template.Template, rec fread.Record) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, rec); err != nil {
		return "", fmt.Errorf("%s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// Sender delivers messages.
type Sender interface {
	Send(m Message) error
}

// SenderFunc adapts a function to [Sender].
type SenderFunc func(Message) error

// Send calls f(m).
func (f SenderFunc) Send(m Message) error { return f(m) }

// BatchSender is a [Sender] that can also take a whole sequence of messages
// in one delivery.
type BatchSender interface {
	Sender
	SendSeq(msgs iter.Seq[Message]) error
}

// ConsoleSender writes messages to W. Format defaults to [render.Fields],
// which prints From/To/Subject/Body lines.
type ConsoleSender struct {
	W      io.Writer
	Format render.Format
}

// Send writes m.
func (s ConsoleSender) Send(m Message) error {
	return render.Write(s.W, s.format(), m)
}

// SendSeq writes the messages as they arrive as one document, so json
// output is a single array and fields output separates messages with a
// blank line.
func (s ConsoleSender) SendSeq(msgs iter.Seq[Message]) error {
	return render.WriteIter(s.W, s.format(), msgs)
}

func (s ConsoleSender) format() render.Format {
	if s.Format == "" {
		return render.Fields
	}
	return s.Format
}

// SendAll sends every message in order and stops at the first failure.
func SendAll(s Sender, msgs []Message) error {
	return send(s, slices.Values(msgs))
}

// Send builds one message per record and hands each to s as soon as it is
// built. It stops at the first record whose templates fail and returns the
// number of messages built.
func (b *Builder) Send(s Sender, records []fread.Record) (int, error) {
	var buildErr error
	n := 0
	msgs := func(yield func(Message) bool) {
		for i, rec := range records {
			m, err := b.Build(rec)
			if err != nil {
				buildErr = fmt.Errorf("record %d: %w", i+1, err)
				return
			}
			n++
			if !yield(m) {
				return
			}
		}
	}
	if err := send(s, msgs); err != nil {
		return n, err
	}
	return n, buildErr
}

func send(s Sender, msgs iter.Seq[Message]) error {
	if bs, ok := s.(BatchSender); ok {
		return bs.SendSeq(msgs)
	}
	i := 0
	for m := range msgs {
		i++
		if err := s.Send(m); err != nil {
			return fmt.Errorf("message %d to %q: %w", i, m.To, err)
		}
	}
	return nil
}
