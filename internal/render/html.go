package render

import (
	"embed"
	"html/template"
	"io"

	"orderdesk/internal/view"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// HTML набор шаблонов консоли, разобранный один раз при старте
type HTML struct {
	tmpl *template.Template
}

func NewHTML() (*HTML, error) {
	tmpl, err := template.New("console").ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	return &HTML{tmpl: tmpl}, nil
}

func (h *HTML) Page(w io.Writer, p view.Page) error {
	return h.tmpl.ExecuteTemplate(w, "page", p)
}

func (h *HTML) ClientForm(w io.Writer, f view.ClientForm) error {
	return h.tmpl.ExecuteTemplate(w, "client_form", f)
}

func (h *HTML) ProductForm(w io.Writer, f view.ProductForm) error {
	return h.tmpl.ExecuteTemplate(w, "product_form", f)
}

func (h *HTML) OrderForm(w io.Writer, f view.OrderForm) error {
	return h.tmpl.ExecuteTemplate(w, "order_form", f)
}

func (h *HTML) Confirm(w io.Writer, p view.ConfirmPage) error {
	return h.tmpl.ExecuteTemplate(w, "confirm", p)
}
