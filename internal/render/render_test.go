package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"orderdesk/internal/domain"
	"orderdesk/internal/state"
	"orderdesk/internal/view"
)

func acmePage() view.Page {
	st := state.New()
	st.SetAll([]domain.Client{{ID: 1, Name: "Acme"}}, []domain.Product{}, []domain.Order{}, []domain.OrdersByClient{})
	return view.BuildPage(st.Snapshot(), nil)
}

func TestText_InitialLoadRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text{}.Page(&buf, acmePage()))
	lines := strings.Split(buf.String(), "\n")
	assert.Contains(t, lines, "Acme / - / [Edit][Delete]")
}

func TestText_Orders(t *testing.T) {
	st := state.New()
	st.SetAll(nil, nil, []domain.Order{{ID: 1, Number: "N1", ClientID: 9, TotalAmount: 17, IsConfirmed: true}}, nil)
	var buf bytes.Buffer
	require.NoError(t, Text{}.Page(&buf, view.BuildPage(st.Snapshot(), nil)))
	assert.Contains(t, buf.String(), "N1 / Unknown / - / 17.00 / Confirmed / [Delete]\n")
}

func TestJSONAndYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON{}.Page(&buf, acmePage()))
	var decoded struct {
		Clients []view.ClientRow `json:"clients"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Clients, 1)
	assert.Equal(t, "-", decoded.Clients[0].INN)

	buf.Reset()
	require.NoError(t, YAML{}.Page(&buf, acmePage()))
	var y map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &y))
	assert.Equal(t, "clients", y["section"])
	assert.NotContains(t, buf.String(), "nav:")
}

func TestByFormat(t *testing.T) {
	for _, f := range []string{"", "text", "json", "yaml", "html"} {
		r, err := ByFormat(f)
		require.NoError(t, err, f)
		assert.NotNil(t, r)
	}
	_, err := ByFormat("xml")
	assert.Error(t, err)
}

func TestHTML_Page(t *testing.T) {
	h, err := NewHTML()
	require.NoError(t, err)

	page := acmePage()
	page.Flash = &view.Flash{Kind: view.FlashError, Message: "Failed to create client. Please try again."}
	var buf bytes.Buffer
	require.NoError(t, h.Page(&buf, page))
	out := buf.String()
	assert.Contains(t, out, "<td>Acme</td><td>-</td>")
	assert.Contains(t, out, `href="/clients/1/delete"`)
	assert.Contains(t, out, "Failed to create client. Please try again.")
	assert.NotContains(t, out, `id="orders-list"`)
}

func TestHTML_EscapesNames(t *testing.T) {
	h, err := NewHTML()
	require.NoError(t, err)
	st := state.New()
	st.SetAll([]domain.Client{{ID: 1, Name: "<script>x</script>"}}, nil, nil, nil)
	var buf bytes.Buffer
	require.NoError(t, h.Page(&buf, view.BuildPage(st.Snapshot(), nil)))
	assert.NotContains(t, buf.String(), "<script>x</script>")
}

func TestHTML_Forms(t *testing.T) {
	h, err := NewHTML()
	require.NoError(t, err)

	var buf bytes.Buffer
	f := view.NewClientForm(nil)
	f.Errors = map[string]string{"name": "This field is required."}
	require.NoError(t, h.ClientForm(&buf, f))
	assert.Contains(t, buf.String(), "This field is required.")

	buf.Reset()
	require.NoError(t, h.ProductForm(&buf, view.NewProductForm(&domain.Product{ID: 4, Name: "Flour", Unit: "kg"})))
	assert.Contains(t, buf.String(), `action="/products/4"`)

	buf.Reset()
	of := view.OrderFormFrom(0, "N1", "", []view.OrderLine{{Quantity: "2", Price: "3.5"}}, "7.00", nil,
		[]domain.Product{{ID: 1, Name: "Bread", Unit: "pcs"}})
	require.NoError(t, h.OrderForm(&buf, of))
	assert.Contains(t, buf.String(), "Bread (pcs)")
	assert.Contains(t, buf.String(), `value="remove_item:0"`)
	assert.Contains(t, buf.String(), "7.00")

	buf.Reset()
	require.NoError(t, h.Confirm(&buf, view.DeletePrompt("order", "/orders/1/delete", "/?section=orders")))
	assert.Contains(t, buf.String(), "Are you sure you want to delete this order?")
	assert.Contains(t, buf.String(), `name="confirm" value="1"`)
}
