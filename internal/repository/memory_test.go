package repository

import (
	"context"
	"errors"
	"testing"

	"orderdesk/internal/domain"
)

func TestMemoryStore_ClientCRUD(t *testing.T) {
	ctx := context.Background()
	clients := NewMemoryStore().Clients()

	c, err := clients.Create(ctx, domain.ClientInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == 0 {
		t.Fatalf("no id")
	}

	up, err := clients.Update(ctx, c.ID, domain.ClientInput{Name: "Acme Ltd", INN: "123"})
	if err != nil || up.Name != "Acme Ltd" || up.INN != "123" {
		t.Fatalf("update: %v %+v", err, up)
	}

	if err := clients.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := clients.Delete(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := clients.Create(ctx, domain.ClientInput{Name: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestMemoryStore_ListKeepsIDOrder(t *testing.T) {
	ctx := context.Background()
	products := NewMemoryStore().Products()
	for _, n := range []string{"C", "A", "B"} {
		if _, err := products.Create(ctx, domain.ProductInput{Name: n, Unit: "kg"}); err != nil {
			t.Fatal(err)
		}
	}
	list, _ := products.List(ctx)
	if len(list) != 3 || list[0].Name != "C" || list[2].Name != "B" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestMemoryOrders_TotalsAndConfirm(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c, _ := store.Clients().Create(ctx, domain.ClientInput{Name: "Acme"})
	p, _ := store.Products().Create(ctx, domain.ProductInput{Name: "Bread", Unit: "pcs"})
	orders := store.Orders()

	o, err := orders.Create(ctx, domain.OrderInput{
		ClientID: c.ID,
		Number:   "N1",
		Items: []domain.OrderItemInput{
			{ProductID: p.ID, Quantity: 2, Price: 3.5},
			{ProductID: p.ID, Quantity: 1, Price: 10},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if o.TotalAmount != 17 {
		t.Fatalf("total expected 17, got %v", o.TotalAmount)
	}
	if o.Date.IsZero() {
		t.Fatalf("date not set")
	}

	if _, err := orders.Create(ctx, domain.OrderInput{ClientID: c.ID, Number: "N1",
		Items: []domain.OrderItemInput{{ProductID: p.ID, Quantity: 1, Price: 1}}}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	confirmed, err := orders.Confirm(ctx, o.ID)
	if err != nil || !confirmed.IsConfirmed {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := orders.Confirm(ctx, o.ID); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Fatalf("expected already confirmed, got %v", err)
	}
	if _, err := orders.Update(ctx, o.ID, domain.OrderInput{Number: "N2"}); !errors.Is(err, ErrConfirmed) {
		t.Fatalf("expected confirmed error, got %v", err)
	}

	sums, _ := orders.ListByClient(ctx)
	if len(sums) != 1 || sums[0].OrdersSum != 17 || sums[0].Client.Name != "Acme" {
		t.Fatalf("unexpected sums: %+v", sums)
	}

	// delete of confirmed order rolls the aggregate back
	if err := orders.Delete(ctx, o.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	sums, _ = orders.ListByClient(ctx)
	if len(sums) != 1 || sums[0].OrdersSum != 0 {
		t.Fatalf("unexpected sums after delete: %+v", sums)
	}
}

func TestMemoryOrders_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c, _ := store.Clients().Create(ctx, domain.ClientInput{Name: "Acme"})
	orders := store.Orders()

	if _, err := orders.Create(ctx, domain.OrderInput{ClientID: c.ID, Number: "N"}); !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected no items, got %v", err)
	}
	if _, err := orders.Create(ctx, domain.OrderInput{ClientID: c.ID, Number: "N",
		Items: []domain.OrderItemInput{{ProductID: 42, Quantity: 1, Price: 1}}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := orders.Confirm(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStore_DeleteReferenced(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := Seed(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Clients().Delete(ctx, 1); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected in use, got %v", err)
	}
	if err := store.Products().Delete(ctx, 1); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected in use, got %v", err)
	}
}

func TestSeed_FillsStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := Seed(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	clients, _ := store.Clients().List(ctx)
	orders, _ := store.Orders().List(ctx)
	if len(clients) != 2 || len(orders) != 2 {
		t.Fatalf("unexpected seed: %d clients, %d orders", len(clients), len(orders))
	}
	if !orders[0].IsConfirmed || orders[1].IsConfirmed {
		t.Fatalf("unexpected confirmation flags")
	}
}

func TestMemoryTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := Seed(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	boom := errors.New("boom")

	err := NewMemoryTx(store).WithTransaction(ctx, func(ctx context.Context) error {
		c, err := store.Clients().Create(ctx, domain.ClientInput{Name: "Umbrella"})
		if err != nil {
			return err
		}
		o, err := store.Orders().Create(ctx, domain.OrderInput{
			ClientID: c.ID,
			Number:   "T-1",
			Items:    []domain.OrderItemInput{{ProductID: 1, Quantity: 1, Price: 5}},
		})
		if err != nil {
			return err
		}
		if _, err := store.Orders().Confirm(ctx, o.ID); err != nil {
			return err
		}
		if err := store.Orders().Delete(ctx, 1); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	clients, _ := store.Clients().List(ctx)
	orders, _ := store.Orders().List(ctx)
	if len(clients) != 2 || len(orders) != 2 {
		t.Fatalf("partial state left: %d clients, %d orders", len(clients), len(orders))
	}
	sums, _ := store.Orders().ListByClient(ctx)
	if len(sums) != 1 || sums[0].ClientID != 1 || sums[0].OrdersSum != 17 {
		t.Fatalf("confirmed sums changed: %+v", sums)
	}

	// счётчики ID тоже откатываются
	c, err := store.Clients().Create(ctx, domain.ClientInput{Name: "Umbrella"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID != 3 {
		t.Fatalf("expected id 3 after rollback, got %d", c.ID)
	}
}

func TestMemoryTx_CommitKeepsChanges(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	err := NewMemoryTx(store).WithTransaction(ctx, func(ctx context.Context) error {
		_, err := store.Clients().Create(ctx, domain.ClientInput{Name: "Initech"})
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	clients, _ := store.Clients().List(ctx)
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
}
