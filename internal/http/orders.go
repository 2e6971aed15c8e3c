package httpapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"orderdesk/internal/domain"
	"orderdesk/internal/http/middleware"
	"orderdesk/internal/http/validation"
	"orderdesk/internal/service"
	"orderdesk/internal/state"
	"orderdesk/internal/view"
)

// orderForm сырые значения формы заказа; позиции приходят
// параллельными списками product_id/quantity/price
type orderForm struct {
	OrderID   int64    `form:"order_id"`
	Number    string   `form:"number"`
	ClientID  string   `form:"client_id"`
	ProductID []string `form:"product_id"`
	Quantity  []string `form:"quantity"`
	Price     []string `form:"price"`
	Op        string   `form:"op"`
}

// orderPayload разобранная форма. Проверяются только обязательные поля
// формы; допустимость позиций решает сервер
type orderPayload struct {
	Number   string        `form:"number" binding:"required"`
	ClientID int64         `form:"client_id" binding:"required"`
	Items    []itemPayload `form:"items" binding:"dive"`
}

type itemPayload struct {
	ProductID int64   `binding:"required"`
	Quantity  float64 `binding:"min=0"`
	Price     float64 `binding:"min=0"`
}

func (f orderForm) lines() []view.OrderLine {
	n := max(len(f.ProductID), len(f.Quantity), len(f.Price))
	out := make([]view.OrderLine, n)
	for i := range out {
		out[i] = view.OrderLine{ProductID: at(f.ProductID, i), Quantity: at(f.Quantity, i), Price: at(f.Price, i)}
	}
	return out
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

func totalOf(lines []view.OrderLine) string {
	ls := make([]service.Line, 0, len(lines))
	for _, l := range lines {
		ls = append(ls, service.Line{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
	}
	return service.RunningTotal(ls)
}

// payload нечисловые значения становятся нулём
func (f orderForm) payload() orderPayload {
	p := orderPayload{Number: strings.TrimSpace(f.Number)}
	p.ClientID, _ = strconv.ParseInt(strings.TrimSpace(f.ClientID), 10, 64)
	for _, l := range f.lines() {
		var it itemPayload
		it.ProductID, _ = strconv.ParseInt(strings.TrimSpace(l.ProductID), 10, 64)
		it.Quantity, _ = strconv.ParseFloat(strings.TrimSpace(l.Quantity), 64)
		it.Price, _ = strconv.ParseFloat(strings.TrimSpace(l.Price), 64)
		p.Items = append(p.Items, it)
	}
	return p
}

func (p orderPayload) input() domain.OrderInput {
	in := domain.OrderInput{ClientID: p.ClientID, Number: p.Number}
	for _, it := range p.Items {
		in.Items = append(in.Items, domain.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return in
}

func (s *Server) orderFormView(id int64, number, client string, lines []view.OrderLine) view.OrderForm {
	snap := s.st.Snapshot()
	return view.OrderFormFrom(id, number, client, lines, totalOf(lines), snap.Clients, snap.Products)
}

func (s *Server) newOrder(c *gin.Context) {
	f := s.orderFormView(0, "", "", []view.OrderLine{{}})
	f.Flash = middleware.GetFlash(c)
	s.renderOrderForm(c, http.StatusOK, f)
}

func (s *Server) editOrder(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionOrders)
	if !ok {
		return
	}
	o, found := s.st.Order(id)
	if !found {
		s.redirectWithFlash(c, sectionURL(state.SectionOrders), view.FlashError, "Order not found.")
		return
	}
	if o.IsConfirmed {
		s.redirectWithFlash(c, sectionURL(state.SectionOrders), view.FlashWarning, "Confirmed orders cannot be edited.")
		return
	}
	f := s.orderFormView(o.ID, o.Number, strconv.FormatInt(o.ClientID, 10), view.LinesFromOrder(o))
	f.Flash = middleware.GetFlash(c)
	s.renderOrderForm(c, http.StatusOK, f)
}

// orderFormOp правка формы без сохранения: добавить/убрать строку, пересчитать
func (s *Server) orderFormOp(c *gin.Context) {
	var in orderForm
	if err := c.ShouldBind(&in); err != nil {
		_ = c.Error(err)
	}
	lines := in.lines()

	switch op := in.Op; {
	case op == "add_item":
		lines = append(lines, view.OrderLine{})
	case strings.HasPrefix(op, "remove_item:"):
		if i, err := strconv.Atoi(strings.TrimPrefix(op, "remove_item:")); err == nil && i >= 0 && i < len(lines) {
			lines = append(lines[:i], lines[i+1:]...)
		}
	}

	s.renderOrderForm(c, http.StatusOK, s.orderFormView(in.OrderID, in.Number, in.ClientID, lines))
}

func (s *Server) orderTotal(c *gin.Context) {
	var in orderForm
	_ = c.ShouldBind(&in)
	c.JSON(http.StatusOK, gin.H{"total": totalOf(in.lines())})
}

func (s *Server) createOrder(c *gin.Context) { s.saveOrder(c, 0) }

func (s *Server) updateOrder(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionOrders)
	if !ok {
		return
	}
	s.saveOrder(c, id)
}

func (s *Server) saveOrder(c *gin.Context, id int64) {
	var in orderForm
	if err := c.ShouldBind(&in); err != nil {
		_ = c.Error(err)
	}
	f := s.orderFormView(id, in.Number, in.ClientID, in.lines())

	p := in.payload()
	if err := binding.Validator.ValidateStruct(&p); err != nil {
		f.Errors = validation.FromBindError(err, &p)
		s.renderOrderForm(c, http.StatusBadRequest, f)
		return
	}

	var err error
	if id == 0 {
		_, err = s.svc.Orders.Create(c.Request.Context(), s.st, p.input())
	} else {
		_, err = s.svc.Orders.Update(c.Request.Context(), s.st, id, p.input())
	}
	if err != nil {
		_ = c.Error(err)
		f.Flash = &view.Flash{Kind: view.FlashError, Message: service.UserMessage(err)}
		s.renderOrderForm(c, mapErrorToStatus(err), f)
		return
	}

	msg := "Order created."
	if id != 0 {
		msg = "Order updated."
	}
	s.redirectWithFlash(c, sectionURL(state.SectionOrders), view.FlashSuccess, msg)
}

func (s *Server) confirmOrder(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionOrders)
	if !ok {
		return
	}
	if _, err := s.svc.Orders.Confirm(c.Request.Context(), s.st, id); err != nil {
		_ = c.Error(err)
		s.redirectWithFlash(c, sectionURL(state.SectionOrders), view.FlashError, service.UserMessage(err))
		return
	}
	s.redirectWithFlash(c, sectionURL(state.SectionOrders), view.FlashSuccess, "Order confirmed.")
}

func (s *Server) deleteOrderPrompt(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionOrders)
	if !ok {
		return
	}
	s.renderConfirm(c, view.DeletePrompt("order", "/orders/"+strconv.FormatInt(id, 10)+"/delete", sectionURL(state.SectionOrders)))
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionOrders)
	if !ok {
		return
	}
	var f deleteForm
	_ = c.ShouldBind(&f)
	s.finishDelete(c, state.SectionOrders, "Order deleted.",
		s.svc.Orders.Delete(c.Request.Context(), s.st, id, f.confirmed()))
}

func (s *Server) renderOrderForm(c *gin.Context, status int, f view.OrderForm) {
	s.renderHTML(c, status, func(w io.Writer) error { return s.html.OrderForm(w, f) })
}
