package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
	"orderdesk/internal/state"
)

func labels(actions []Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Label)
	}
	return out
}

func TestClientRows_MissingINN(t *testing.T) {
	rows := ClientRows([]domain.Client{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex", INN: "77"}})
	require.Len(t, rows, 2)
	assert.Equal(t, "-", rows[0].INN)
	assert.Equal(t, "77", rows[1].INN)
	assert.Equal(t, []string{"Edit", "Delete"}, labels(rows[0].Actions))
	assert.Equal(t, "/clients/1/edit", rows[0].Actions[0].Href)
}

func TestOrderRows_DanglingClient(t *testing.T) {
	clients := []domain.Client{{ID: 1, Name: "Acme"}}
	orders := []domain.Order{
		{ID: 10, Number: "A", ClientID: 1, TotalAmount: 17},
		{ID: 11, Number: "B", ClientID: 42, TotalAmount: 3.456},
	}
	rows := OrderRows(orders, clients)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[0].Client)
	assert.Equal(t, "Unknown", rows[1].Client)
	assert.Equal(t, "17.00", rows[0].Total)
	assert.Equal(t, "3.46", rows[1].Total)
}

func TestOrderRows_ConfirmedOnlyDelete(t *testing.T) {
	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := OrderRows([]domain.Order{
		{ID: 1, Number: "D", Date: date},
		{ID: 2, Number: "C", Date: date, IsConfirmed: true},
	}, nil)
	assert.Equal(t, "Draft", rows[0].Status)
	assert.Equal(t, []string{"Edit", "Confirm", "Delete"}, labels(rows[0].Actions))
	assert.Equal(t, "POST", rows[0].Actions[1].Method)
	assert.Equal(t, "/orders/1/confirm", rows[0].Actions[1].Href)
	assert.Equal(t, "Confirmed", rows[1].Status)
	assert.Equal(t, []string{"Delete"}, labels(rows[1].Actions))
	assert.Equal(t, "2024-05-01", rows[1].Date)
}

func TestOrderRows_KeepsArrayOrder(t *testing.T) {
	rows := OrderRows([]domain.Order{{ID: 3, Number: "c"}, {ID: 1, Number: "a"}, {ID: 2, Number: "b"}}, nil)
	assert.Equal(t, "c", rows[0].Number)
	assert.Equal(t, "a", rows[1].Number)
	assert.Equal(t, "-", rows[0].Date)
}

func TestBuildPage(t *testing.T) {
	st := state.New()
	st.SetAll([]domain.Client{{ID: 1, Name: "Acme"}}, nil, nil,
		[]domain.OrdersByClient{{ClientID: 1, OrdersSum: 12.5}})
	st.SetSection(state.SectionOrders)

	page := BuildPage(st.Snapshot(), &Flash{Kind: FlashSuccess, Message: "ok"})
	assert.Equal(t, "orders", page.Section)
	require.Len(t, page.Nav, 4)
	assert.True(t, page.Nav[2].Active)
	assert.False(t, page.Nav[0].Active)
	assert.Equal(t, "Acme", page.OrdersByClient[0].Client)
	assert.Equal(t, "12.50", page.OrdersByClient[0].Sum)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
}

func TestOrderFormFrom(t *testing.T) {
	products := []domain.Product{{ID: 1, Name: "Bread", Unit: "pcs"}, {ID: 2, Name: "Flour", Unit: "kg"}}
	clients := []domain.Client{{ID: 5, Name: "Acme"}}
	f := OrderFormFrom(0, "N1", "5", []OrderLine{{ProductID: "2", Quantity: "1", Price: "3"}, {}}, "3.00", clients, products)

	assert.Equal(t, "/orders", f.Action)
	assert.True(t, f.Clients[0].Selected)
	require.Len(t, f.Lines, 2)
	assert.Equal(t, 1, f.Lines[1].Index)
	assert.Equal(t, "Flour (kg)", f.Lines[0].Products[1].Label)
	assert.True(t, f.Lines[0].Products[1].Selected)
	assert.False(t, f.Lines[1].Products[1].Selected)

	edit := OrderFormFrom(9, "N9", "5", nil, "0.00", clients, products)
	assert.Equal(t, "/orders/9", edit.Action)
	assert.Equal(t, "Edit order", edit.Title)
}

func TestLinesFromOrder(t *testing.T) {
	lines := LinesFromOrder(domain.Order{Items: []domain.OrderItem{{ProductID: 3, Quantity: 1.5, Price: 10}}})
	require.Len(t, lines, 1)
	assert.Equal(t, OrderLine{ProductID: "3", Quantity: "1.5", Price: "10"}, lines[0])
}

func TestDeletePrompt(t *testing.T) {
	p := DeletePrompt("client", "/clients/1/delete", "/?section=clients")
	assert.Equal(t, "Are you sure you want to delete this client?", p.Question)
}
