// Package view maps the console state into row and form models that any
// renderer (HTML, text, JSON) can draw without touching domain types.
package view

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
)

const (
	// UnknownClient подставляется, когда client_id заказа нет в снимке
	UnknownClient = "Unknown"
	// Missing пустое необязательное поле
	Missing = "-"
	// DateLayout формат даты заказа
	DateLayout = "2006-01-02"

	StatusConfirmed = "Confirmed"
	StatusDraft     = "Draft"
)

// Action кнопка в строке таблицы
type Action struct {
	Label  string `json:"label" yaml:"label"`
	Method string `json:"method" yaml:"method"`
	Href   string `json:"href" yaml:"href"`
	Danger bool   `json:"danger,omitempty" yaml:"danger,omitempty"`
}

type ClientRow struct {
	ID      int64    `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	INN     string   `json:"inn" yaml:"inn"`
	Actions []Action `json:"actions" yaml:"actions"`
}

type ProductRow struct {
	ID      int64    `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Unit    string   `json:"unit" yaml:"unit"`
	Actions []Action `json:"actions" yaml:"actions"`
}

type OrderRow struct {
	ID        int64    `json:"id" yaml:"id"`
	Number    string   `json:"number" yaml:"number"`
	Client    string   `json:"client" yaml:"client"`
	Date      string   `json:"date" yaml:"date"`
	Total     string   `json:"total" yaml:"total"`
	Status    string   `json:"status" yaml:"status"`
	Confirmed bool     `json:"confirmed" yaml:"confirmed"`
	Actions   []Action `json:"actions" yaml:"actions"`
}

type OrdersByClientRow struct {
	ClientID int64  `json:"client_id" yaml:"client_id"`
	Client   string `json:"client" yaml:"client"`
	Sum      string `json:"sum" yaml:"sum"`
}

func itemHref(collection string, id int64, suffix string) string {
	return "/" + collection + "/" + strconv.FormatInt(id, 10) + suffix
}

func editDelete(collection string, id int64) []Action {
	return []Action{
		{Label: "Edit", Method: "GET", Href: itemHref(collection, id, "/edit")},
		{Label: "Delete", Method: "GET", Href: itemHref(collection, id, "/delete"), Danger: true},
	}
}

func ClientRows(clients []domain.Client) []ClientRow {
	rows := make([]ClientRow, 0, len(clients))
	for _, c := range clients {
		inn := c.INN
		if inn == "" {
			inn = Missing
		}
		rows = append(rows, ClientRow{ID: c.ID, Name: c.Name, INN: inn, Actions: editDelete("clients", c.ID)})
	}
	return rows
}

func ProductRows(products []domain.Product) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductRow{ID: p.ID, Name: p.Name, Unit: p.Unit, Actions: editDelete("products", p.ID)})
	}
	return rows
}

// OrderRows: имя клиента ищется линейно; черновики получают Edit и Confirm,
// у подтверждённых заказов только Delete.
func OrderRows(orders []domain.Order, clients []domain.Client) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		row := OrderRow{
			ID:        o.ID,
			Number:    o.Number,
			Client:    ClientName(clients, o.ClientID),
			Date:      FormatDate(o.Date),
			Total:     Money(o.TotalAmount),
			Status:    StatusDraft,
			Confirmed: o.IsConfirmed,
		}
		if o.IsConfirmed {
			row.Status = StatusConfirmed
		} else {
			row.Actions = append(row.Actions,
				Action{Label: "Edit", Method: "GET", Href: itemHref("orders", o.ID, "/edit")},
				Action{Label: "Confirm", Method: "POST", Href: itemHref("orders", o.ID, "/confirm")},
			)
		}
		row.Actions = append(row.Actions,
			Action{Label: "Delete", Method: "GET", Href: itemHref("orders", o.ID, "/delete"), Danger: true})
		rows = append(rows, row)
	}
	return rows
}

func OrdersByClientRows(list []domain.OrdersByClient, clients []domain.Client) []OrdersByClientRow {
	rows := make([]OrdersByClientRow, 0, len(list))
	for _, r := range list {
		name := r.Client.Name
		if name == "" {
			name = ClientName(clients, r.ClientID)
		}
		rows = append(rows, OrdersByClientRow{ClientID: r.ClientID, Client: name, Sum: Money(r.OrdersSum)})
	}
	return rows
}

// ClientName имя клиента или UnknownClient для висячей ссылки
func ClientName(clients []domain.Client, id int64) string {
	for _, c := range clients {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownClient
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return Missing
	}
	return t.Format(DateLayout)
}

// Money сумма с двумя знаками после точки
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
