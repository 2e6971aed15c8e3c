package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"orderdesk/internal/domain"
	"orderdesk/internal/http/middleware"
	"orderdesk/internal/http/validation"
	"orderdesk/internal/service"
	"orderdesk/internal/state"
	"orderdesk/internal/view"
)

type clientForm struct {
	Name string `form:"name" binding:"required"`
	INN  string `form:"inn"`
}

type productForm struct {
	Name string `form:"name" binding:"required"`
	Unit string `form:"unit" binding:"required"`
}

type deleteForm struct {
	Confirm string `form:"confirm"`
}

func (f deleteForm) confirmed() bool { return f.Confirm == "1" }

func (s *Server) newClient(c *gin.Context) {
	f := view.NewClientForm(nil)
	f.Flash = middleware.GetFlash(c)
	s.renderClientForm(c, http.StatusOK, f)
}

func (s *Server) editClient(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionClients)
	if !ok {
		return
	}
	cl, found := s.st.Client(id)
	if !found {
		s.redirectWithFlash(c, sectionURL(state.SectionClients), view.FlashError, "Client not found.")
		return
	}
	f := view.NewClientForm(&cl)
	f.Flash = middleware.GetFlash(c)
	s.renderClientForm(c, http.StatusOK, f)
}

func (s *Server) createClient(c *gin.Context) { s.saveClient(c, 0) }

func (s *Server) updateClient(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionClients)
	if !ok {
		return
	}
	s.saveClient(c, id)
}

func (s *Server) saveClient(c *gin.Context, id int64) {
	var in clientForm
	bindErr := c.ShouldBind(&in)

	f := view.NewClientForm(nil)
	if id != 0 {
		f = view.NewClientForm(&domain.Client{ID: id})
	}
	f.Name, f.INN = in.Name, in.INN

	if bindErr != nil {
		f.Errors = validation.FromBindError(bindErr, &in)
		s.renderClientForm(c, http.StatusBadRequest, f)
		return
	}

	input := domain.ClientInput{Name: strings.TrimSpace(in.Name), INN: strings.TrimSpace(in.INN)}
	var err error
	if id == 0 {
		_, err = s.svc.Clients.Create(c.Request.Context(), s.st, input)
	} else {
		_, err = s.svc.Clients.Update(c.Request.Context(), s.st, id, input)
	}
	if err != nil {
		_ = c.Error(err)
		f.Flash = &view.Flash{Kind: view.FlashError, Message: service.UserMessage(err)}
		s.renderClientForm(c, mapErrorToStatus(err), f)
		return
	}

	msg := "Client created."
	if id != 0 {
		msg = "Client updated."
	}
	s.redirectWithFlash(c, sectionURL(state.SectionClients), view.FlashSuccess, msg)
}

func (s *Server) deleteClientPrompt(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionClients)
	if !ok {
		return
	}
	s.renderConfirm(c, view.DeletePrompt("client", "/clients/"+strconv.FormatInt(id, 10)+"/delete", sectionURL(state.SectionClients)))
}

func (s *Server) deleteClient(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionClients)
	if !ok {
		return
	}
	var f deleteForm
	_ = c.ShouldBind(&f)
	s.finishDelete(c, state.SectionClients, "Client deleted.",
		s.svc.Clients.Delete(c.Request.Context(), s.st, id, f.confirmed()))
}

func (s *Server) newProduct(c *gin.Context) {
	f := view.NewProductForm(nil)
	f.Flash = middleware.GetFlash(c)
	s.renderProductForm(c, http.StatusOK, f)
}

func (s *Server) editProduct(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionProducts)
	if !ok {
		return
	}
	p, found := s.st.Product(id)
	if !found {
		s.redirectWithFlash(c, sectionURL(state.SectionProducts), view.FlashError, "Product not found.")
		return
	}
	f := view.NewProductForm(&p)
	f.Flash = middleware.GetFlash(c)
	s.renderProductForm(c, http.StatusOK, f)
}

func (s *Server) createProduct(c *gin.Context) { s.saveProduct(c, 0) }

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionProducts)
	if !ok {
		return
	}
	s.saveProduct(c, id)
}

func (s *Server) saveProduct(c *gin.Context, id int64) {
	var in productForm
	bindErr := c.ShouldBind(&in)

	f := view.NewProductForm(nil)
	if id != 0 {
		f = view.NewProductForm(&domain.Product{ID: id})
	}
	f.Name, f.Unit = in.Name, in.Unit

	if bindErr != nil {
		f.Errors = validation.FromBindError(bindErr, &in)
		s.renderProductForm(c, http.StatusBadRequest, f)
		return
	}

	input := domain.ProductInput{Name: strings.TrimSpace(in.Name), Unit: strings.TrimSpace(in.Unit)}
	var err error
	if id == 0 {
		_, err = s.svc.Products.Create(c.Request.Context(), s.st, input)
	} else {
		_, err = s.svc.Products.Update(c.Request.Context(), s.st, id, input)
	}
	if err != nil {
		_ = c.Error(err)
		f.Flash = &view.Flash{Kind: view.FlashError, Message: service.UserMessage(err)}
		s.renderProductForm(c, mapErrorToStatus(err), f)
		return
	}

	msg := "Product created."
	if id != 0 {
		msg = "Product updated."
	}
	s.redirectWithFlash(c, sectionURL(state.SectionProducts), view.FlashSuccess, msg)
}

func (s *Server) deleteProductPrompt(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionProducts)
	if !ok {
		return
	}
	s.renderConfirm(c, view.DeletePrompt("product", "/products/"+strconv.FormatInt(id, 10)+"/delete", sectionURL(state.SectionProducts)))
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := s.pathID(c, state.SectionProducts)
	if !ok {
		return
	}
	var f deleteForm
	_ = c.ShouldBind(&f)
	s.finishDelete(c, state.SectionProducts, "Product deleted.",
		s.svc.Products.Delete(c.Request.Context(), s.st, id, f.confirmed()))
}

// finishDelete неподтверждённое удаление молча возвращает к списку
func (s *Server) finishDelete(c *gin.Context, sec state.Section, okMsg string, err error) {
	switch {
	case err == nil:
		s.redirectWithFlash(c, sectionURL(sec), view.FlashSuccess, okMsg)
	case errors.Is(err, service.ErrNotConfirmed):
		s.redirectWithFlash(c, sectionURL(sec), view.FlashInfo, "Deletion cancelled.")
	default:
		_ = c.Error(err)
		s.redirectWithFlash(c, sectionURL(sec), view.FlashError, service.UserMessage(err))
	}
}

func (s *Server) renderClientForm(c *gin.Context, status int, f view.ClientForm) {
	s.renderHTML(c, status, func(w io.Writer) error { return s.html.ClientForm(w, f) })
}

func (s *Server) renderProductForm(c *gin.Context, status int, f view.ProductForm) {
	s.renderHTML(c, status, func(w io.Writer) error { return s.html.ProductForm(w, f) })
}

func (s *Server) renderConfirm(c *gin.Context, p view.ConfirmPage) {
	p.Flash = middleware.GetFlash(c)
	s.renderHTML(c, http.StatusOK, func(w io.Writer) error { return s.html.Confirm(w, p) })
}
