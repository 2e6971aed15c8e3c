package httpapi

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orderdesk/internal/apiclient"
	"orderdesk/internal/http/flash"
	"orderdesk/internal/http/middleware"
	"orderdesk/internal/render"
	"orderdesk/internal/service"
	"orderdesk/internal/state"
	"orderdesk/internal/view"
)

// Server консоль: страницы, формы и действия над состоянием
type Server struct {
	engine *gin.Engine
	st     *state.State
	svc    *service.Services
	html   *render.HTML
	flash  *flash.Codec
	log    *slog.Logger
}

func NewServer(st *state.State, svc *service.Services, html *render.HTML, codec *flash.Codec, log *slog.Logger) *Server {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(log), middleware.Flash(codec))
	s := &Server{engine: r, st: st, svc: svc, html: html, flash: codec, log: log}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.index)
	s.engine.POST("/reload", s.reload)

	clients := s.engine.Group("/clients")
	{
		clients.GET("/new", s.newClient)
		clients.POST("", s.createClient)
		clients.GET("/:id/edit", s.editClient)
		clients.POST("/:id", s.updateClient)
		clients.GET("/:id/delete", s.deleteClientPrompt)
		clients.POST("/:id/delete", s.deleteClient)
	}

	products := s.engine.Group("/products")
	{
		products.GET("/new", s.newProduct)
		products.POST("", s.createProduct)
		products.GET("/:id/edit", s.editProduct)
		products.POST("/:id", s.updateProduct)
		products.GET("/:id/delete", s.deleteProductPrompt)
		products.POST("/:id/delete", s.deleteProduct)
	}

	orders := s.engine.Group("/orders")
	{
		orders.GET("/new", s.newOrder)
		orders.POST("", s.createOrder)
		orders.POST("/form", s.orderFormOp)
		orders.POST("/total", s.orderTotal)
		orders.GET("/:id/edit", s.editOrder)
		orders.POST("/:id", s.updateOrder)
		orders.GET("/:id/delete", s.deleteOrderPrompt)
		orders.POST("/:id/delete", s.deleteOrder)
		orders.POST("/:id/confirm", s.confirmOrder)
	}

	v1 := s.engine.Group("/api/v1")
	v1.GET("/state", s.stateJSON)
}

func (s *Server) index(c *gin.Context) {
	if name := c.Query("section"); name != "" {
		if sec, ok := state.ParseSection(name); ok {
			s.st.SetSection(sec)
		}
	}
	page := view.BuildPage(s.st.Snapshot(), middleware.GetFlash(c))
	s.renderHTML(c, http.StatusOK, func(w io.Writer) error { return s.html.Page(w, page) })
}

func (s *Server) reload(c *gin.Context) {
	if err := s.svc.Loader.Load(c.Request.Context(), s.st); err != nil {
		_ = c.Error(err)
		s.redirectWithFlash(c, "/", view.FlashError, service.UserMessage(err))
		return
	}
	s.redirectWithFlash(c, "/", view.FlashSuccess, "Data reloaded.")
}

func (s *Server) stateJSON(c *gin.Context) {
	c.JSON(http.StatusOK, view.BuildPage(s.st.Snapshot(), nil))
}

func (s *Server) renderHTML(c *gin.Context, status int, fn func(w io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "render error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) redirectWithFlash(c *gin.Context, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, s.flash, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusFound, location)
}

func sectionURL(sec state.Section) string { return "/?section=" + string(sec) }

// pathID разбирает :id; при ошибке отвечает редиректом с сообщением
func (s *Server) pathID(c *gin.Context, sec state.Section) (int64, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil || id <= 0 {
		s.redirectWithFlash(c, sectionURL(sec), view.FlashError, "Invalid id.")
		return 0, false
	}
	return id, true
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// mapErrorToStatus статус ответа консоли для неудавшегося действия.
// Отказы бэкенда 400/404/409 передаются как есть
func mapErrorToStatus(err error) int {
	var se *apiclient.SchemaError
	switch {
	case errors.Is(err, service.ErrNotConfirmed):
		return http.StatusBadRequest
	case errors.As(err, &se), errors.Is(err, service.ErrEmptyResponse):
		return http.StatusBadGateway
	}
	switch status := apiclient.StatusOf(err); status {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict:
		return status
	}
	// сетевой сбой и 5xx бэкенда
	return http.StatusBadGateway
}
