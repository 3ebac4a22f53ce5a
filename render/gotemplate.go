package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// TemplateFuncs are available to go-template formats.
var TemplateFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"trim":  strings.TrimSpace,
}

func writeGoTemplate[T any](w io.Writer, tmplStr string, items []T) error {
	tmpl, err := template.New("item").Funcs(TemplateFuncs).Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	for _, item := range items {
		if err := tmpl.Execute(w, item); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
