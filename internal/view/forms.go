package view

import (
	"strconv"

	"orderdesk/internal/domain"
)

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type ClientForm struct {
	ID     int64
	Title  string
	Action string
	Name   string
	INN    string
	Errors map[string]string
	Flash  *Flash
}

type ProductForm struct {
	ID     int64
	Title  string
	Action string
	Name   string
	Unit   string
	Errors map[string]string
	Flash  *Flash
}

// OrderLine строка позиции в форме заказа, значения как ввёл пользователь
type OrderLine struct {
	Index     int
	ProductID string
	Quantity  string
	Price     string
	Products  []Option
}

type OrderForm struct {
	ID      int64
	Title   string
	Action  string
	Number  string
	Client  string
	Clients []Option
	Lines   []OrderLine
	Total   string
	Errors  map[string]string
	Flash   *Flash
}

func NewClientForm(c *domain.Client) ClientForm {
	if c == nil {
		return ClientForm{Title: "New client", Action: "/clients"}
	}
	return ClientForm{
		ID:     c.ID,
		Title:  "Edit client",
		Action: "/clients/" + strconv.FormatInt(c.ID, 10),
		Name:   c.Name,
		INN:    c.INN,
	}
}

func NewProductForm(p *domain.Product) ProductForm {
	if p == nil {
		return ProductForm{Title: "New product", Action: "/products"}
	}
	return ProductForm{
		ID:     p.ID,
		Title:  "Edit product",
		Action: "/products/" + strconv.FormatInt(p.ID, 10),
		Name:   p.Name,
		Unit:   p.Unit,
	}
}

// ClientOptions варианты выбора клиента
func ClientOptions(clients []domain.Client, selected string) []Option {
	opts := make([]Option, 0, len(clients))
	for _, c := range clients {
		v := strconv.FormatInt(c.ID, 10)
		opts = append(opts, Option{Value: v, Label: c.Name, Selected: v == selected})
	}
	return opts
}

// ProductOptions подпись товара: "Имя (единица)"
func ProductOptions(products []domain.Product, selected string) []Option {
	opts := make([]Option, 0, len(products))
	for _, p := range products {
		v := strconv.FormatInt(p.ID, 10)
		opts = append(opts, Option{Value: v, Label: p.Name + " (" + p.Unit + ")", Selected: v == selected})
	}
	return opts
}

// OrderFormFrom собирает форму заказа; lines уже без номеров и вариантов
func OrderFormFrom(id int64, number, client string, lines []OrderLine, total string, clients []domain.Client, products []domain.Product) OrderForm {
	f := OrderForm{
		ID:      id,
		Title:   "New order",
		Action:  "/orders",
		Number:  number,
		Client:  client,
		Clients: ClientOptions(clients, client),
		Total:   total,
	}
	if id != 0 {
		f.Title = "Edit order"
		f.Action = "/orders/" + strconv.FormatInt(id, 10)
	}
	f.Lines = make([]OrderLine, 0, len(lines))
	for i, l := range lines {
		l.Index = i
		l.Products = ProductOptions(products, l.ProductID)
		f.Lines = append(f.Lines, l)
	}
	return f
}

// LinesFromOrder строки формы для редактирования существующего заказа
func LinesFromOrder(o domain.Order) []OrderLine {
	lines := make([]OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, OrderLine{
			ProductID: strconv.FormatInt(it.ProductID, 10),
			Quantity:  strconv.FormatFloat(it.Quantity, 'f', -1, 64),
			Price:     strconv.FormatFloat(it.Price, 'f', -1, 64),
		})
	}
	return lines
}
