// Package render turns view models into markup or plain output. The
// renderers only read view models, so they can be swapped freely.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"orderdesk/internal/view"
)

// Renderer рисует главную страницу в выбранном формате
type Renderer interface {
	Page(w io.Writer, p view.Page) error
}

// ByFormat text | json | yaml | html
func ByFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return Text{}, nil
	case "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	case "html":
		return NewHTML()
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Text таблицы построчно, колонки через " / "
type Text struct{}

func (Text) Page(w io.Writer, p view.Page) error {
	var b strings.Builder
	if p.LoadError != "" {
		fmt.Fprintf(&b, "! %s\n\n", p.LoadError)
	}

	b.WriteString("== Clients ==\n")
	writeRow(&b, "Name", "INN", "Actions")
	for _, r := range p.Clients {
		writeRow(&b, r.Name, r.INN, buttons(r.Actions))
	}

	b.WriteString("\n== Products ==\n")
	writeRow(&b, "Name", "Unit", "Actions")
	for _, r := range p.Products {
		writeRow(&b, r.Name, r.Unit, buttons(r.Actions))
	}

	b.WriteString("\n== Orders ==\n")
	writeRow(&b, "Number", "Client", "Date", "Total Amount", "Status", "Actions")
	for _, r := range p.Orders {
		writeRow(&b, r.Number, r.Client, r.Date, r.Total, r.Status, buttons(r.Actions))
	}

	b.WriteString("\n== Orders by client ==\n")
	writeRow(&b, "Client", "Sum")
	for _, r := range p.OrdersByClient {
		writeRow(&b, r.Client, r.Sum)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, cols ...string) {
	b.WriteString(strings.Join(cols, " / "))
	b.WriteByte('\n')
}

func buttons(actions []view.Action) string {
	var b strings.Builder
	for _, a := range actions {
		b.WriteString("[" + a.Label + "]")
	}
	return b.String()
}

type JSON struct{}

func (JSON) Page(w io.Writer, p view.Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

type YAML struct{}

func (YAML) Page(w io.Writer, p view.Page) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}
