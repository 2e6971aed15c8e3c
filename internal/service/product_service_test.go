package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"orderdesk/internal/apiclient"
	"orderdesk/internal/domain"
	"orderdesk/internal/repository"
	"orderdesk/internal/state"
)

func TestProduct_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setupOrders(t)

	p, err := svc.Products.Create(ctx, st, domain.ProductInput{Name: "Flour", Unit: "kg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Products.Update(ctx, st, p.ID, domain.ProductInput{Name: "Flour", Unit: "t"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, ok := st.Product(p.ID)
	if !ok || got.Unit != "t" {
		t.Fatalf("state not updated: %+v", got)
	}
	if err := svc.Products.Delete(ctx, st, p.ID, true); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(st.Snapshot().Products) != 0 {
		t.Fatalf("product not removed")
	}
}

func TestClient_CreateFailureLeavesStateUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"db down"}`))
	}))
	defer srv.Close()

	api := apiclient.New(srv.URL, time.Second, quietLog())
	svc := NewClientService(api.Clients, quietLog())
	st := state.New()
	st.AppendClient(domain.Client{ID: 1, Name: "Acme"})

	_, err := svc.Create(context.Background(), st, domain.ClientInput{Name: "Globex"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if msg := UserMessage(err); !strings.Contains(msg, "Failed to create client") {
		t.Fatalf("unexpected message %q", msg)
	}
	if apiclient.StatusOf(err) != http.StatusInternalServerError {
		t.Fatalf("status lost in %v", err)
	}
	snap := st.Snapshot()
	if len(snap.Clients) != 1 || snap.Clients[0].Name != "Acme" {
		t.Fatalf("clients changed: %+v", snap.Clients)
	}
}

func TestLoader_AllOrNothing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/clients":
			_, _ = w.Write([]byte(`[{"id":1,"name":"Acme"}]`))
		case "/orders":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	api := apiclient.New(srv.URL, time.Second, quietLog())
	loader := NewLoader(api.Clients, api.Products, api.Orders, quietLog())
	st := state.New()

	err := loader.Load(context.Background(), st)
	if err == nil {
		t.Fatalf("expected load error")
	}
	snap := st.Snapshot()
	if snap.Loaded || len(snap.Clients) != 0 {
		t.Fatalf("partial state written: %+v", snap)
	}
	if snap.LoadError != "Failed to load data. Please try again later." {
		t.Fatalf("unexpected load error %q", snap.LoadError)
	}
}

func TestLoader_PopulatesState(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	if err := repository.Seed(ctx, store); err != nil {
		t.Fatal(err)
	}
	svc := NewServices(store.Clients(), store.Products(), store.Orders(), quietLog())
	st := state.New()
	if err := svc.Loader.Load(ctx, st); err != nil {
		t.Fatalf("load: %v", err)
	}
	snap := st.Snapshot()
	if !snap.Loaded || len(snap.Clients) != 2 || len(snap.Products) != 2 || len(snap.Orders) != 2 || len(snap.OrdersByClient) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestRunningTotal(t *testing.T) {
	got := RunningTotal([]Line{{Quantity: "2", Price: "3.5"}, {Quantity: "1", Price: "10"}})
	if got != "17.00" {
		t.Fatalf("expected 17.00, got %s", got)
	}
	if got := RunningTotal([]Line{{Quantity: "", Price: "3"}, {Quantity: "abc", Price: "1"}}); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
	if got := RunningTotal(nil); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
	if got := ItemsTotal([]domain.OrderItemInput{{Quantity: 0.333, Price: 3}}); got != "1.00" {
		t.Fatalf("expected 1.00, got %s", got)
	}
}

func TestUserMessage_Foreign(t *testing.T) {
	if msg := UserMessage(errors.New("x")); !strings.HasPrefix(msg, "Something went wrong") {
		t.Fatalf("unexpected %q", msg)
	}
}
