package view

import (
	"orderdesk/internal/state"
)

type NavItem struct {
	Name   string `json:"name" yaml:"name"`
	Label  string `json:"label" yaml:"label"`
	Href   string `json:"href" yaml:"href"`
	Active bool   `json:"active" yaml:"active"`
}

// Page всё, что нужно для отрисовки главной страницы
type Page struct {
	Section        string              `json:"section" yaml:"section"`
	Nav            []NavItem           `json:"nav" yaml:"-"`
	Flash          *Flash              `json:"flash,omitempty" yaml:"-"`
	LoadError      string              `json:"load_error,omitempty" yaml:"load_error,omitempty"`
	Clients        []ClientRow         `json:"clients" yaml:"clients"`
	Products       []ProductRow        `json:"products" yaml:"products"`
	Orders         []OrderRow          `json:"orders" yaml:"orders"`
	OrdersByClient []OrdersByClientRow `json:"orders_by_client" yaml:"orders_by_client"`
}

var sectionLabels = map[state.Section]string{
	state.SectionClients:        "Clients",
	state.SectionProducts:       "Products",
	state.SectionOrders:         "Orders",
	state.SectionOrdersByClient: "Orders by client",
}

func SectionLabel(s state.Section) string { return sectionLabels[s] }

// BuildPage строит модель страницы из снимка; связи пересчитываются каждый раз
func BuildPage(snap state.Snapshot, flash *Flash) Page {
	nav := make([]NavItem, 0, len(state.Sections))
	for _, s := range state.Sections {
		nav = append(nav, NavItem{
			Name:   string(s),
			Label:  sectionLabels[s],
			Href:   "/?section=" + string(s),
			Active: s == snap.Section,
		})
	}
	return Page{
		Section:        string(snap.Section),
		Nav:            nav,
		Flash:          flash,
		LoadError:      snap.LoadError,
		Clients:        ClientRows(snap.Clients),
		Products:       ProductRows(snap.Products),
		Orders:         OrderRows(snap.Orders, snap.Clients),
		OrdersByClient: OrdersByClientRows(snap.OrdersByClient, snap.Clients),
	}
}

// ConfirmPage запрос подтверждения удаления
type ConfirmPage struct {
	Title    string
	Question string
	Action   string
	Cancel   string
	Flash    *Flash
}

func DeletePrompt(entity, action, cancel string) ConfirmPage {
	return ConfirmPage{
		Title:    "Delete " + entity,
		Question: "Are you sure you want to delete this " + entity + "?",
		Action:   action,
		Cancel:   cancel,
	}
}
