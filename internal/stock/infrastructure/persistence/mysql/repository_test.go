package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/db"
)

type fixture struct {
	db        *db.DB
	products  domain.ProductRepository
	employees domain.EmployeeRepository
	clients   domain.ClientRepository
	orders    domain.OrderRepository
	items     domain.OrderItemRepository
	sales     domain.SaleRepository
	movements domain.StockMovementRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	d, err := db.Init(db.Config{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, AutoMigrate(context.Background(), d.DB))

	return &fixture{
		db:        d,
		products:  NewProductRepository(d.DB),
		employees: NewEmployeeRepository(d.DB),
		clients:   NewClientRepository(d.DB),
		orders:    NewOrderRepository(d.DB),
		items:     NewOrderItemRepository(d.DB),
		sales:     NewSaleRepository(d.DB),
		movements: NewStockMovementRepository(d.DB),
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) product(t *testing.T, name string, stock int) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, nil, decimal.RequireFromString("9.90"), stock, nil)
	require.NoError(t, err)
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) client(t *testing.T, name string) *domain.Client {
	t.Helper()
	c, err := domain.NewClient(name, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.clients.Create(context.Background(), c))
	return c
}

func (f *fixture) order(t *testing.T, clientID int64, status domain.OrderStatus) *domain.Order {
	t.Helper()
	o, err := domain.NewOrder(clientID, status, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, f.orders.Create(context.Background(), o))
	return o
}

func TestProductCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.product(t, "Caneta", 10)
	assert.NotZero(t, p.ID)
	assert.False(t, p.RegisteredAt.IsZero())

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Caneta", got.Name)
	assert.True(t, decimal.RequireFromString("9.90").Equal(got.Price))

	got.Category = ptr("papelaria")
	require.NoError(t, f.products.Update(ctx, got))
	got, err = f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "papelaria", *got.Category)

	require.NoError(t, f.products.Delete(ctx, p.ID))
	got, err = f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var nf *domain.NotFoundError
	require.ErrorAs(t, f.products.Delete(ctx, p.ID), &nf)
}

func TestProductSearchIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.product(t, "Caderno Azul", 1)
	f.product(t, "Lápis", 1)
	withCategory, err := domain.NewProduct("Borracha", nil, decimal.NewFromInt(1), 1, ptr("AZUL escolar"))
	require.NoError(t, err)
	require.NoError(t, f.products.Create(ctx, withCategory))

	found, err := f.products.List(ctx, "azul", 0, 100)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Caderno Azul", found[0].Name)
	assert.Equal(t, "Borracha", found[1].Name)

	found, err = f.products.List(ctx, "100%", 0, 100)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDecrementStockIsConditional(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Caneta", 5)

	ok, err := f.products.DecrementStock(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.products.DecrementStock(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.products.IncrementStock(ctx, p.ID, 2))
	total, err := f.products.TotalStock(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestTotalStockEmpty(t *testing.T) {
	f := newFixture(t)
	total, err := f.products.TotalStock(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestEmployeeEmailUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := domain.NewEmployee("Ana", "ana@loja.com", "hash", nil)
	require.NoError(t, err)
	require.NoError(t, f.employees.Create(ctx, e))

	dup, err := domain.NewEmployee("Outra Ana", "ana@loja.com", "hash", nil)
	require.NoError(t, err)
	err = f.employees.Create(ctx, dup)
	var ae *domain.AlreadyExistsError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Email já registrado", ae.Error())

	got, err := f.employees.GetByEmail(ctx, "ana@loja.com")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)

	n, err := f.employees.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestClientNullEmailsDoNotConflict(t *testing.T) {
	f := newFixture(t)
	f.client(t, "Ana Silva")
	f.client(t, "Bruno Costa")

	found, err := f.clients.List(context.Background(), "silva", 0, 100)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ana Silva", found[0].Name)
}

func TestOrderSearchByIDOrClientName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ana := f.client(t, "Ana Silva")
	com := f.client(t, "42 Comércio")
	var last *domain.Order
	for i := 0; i < 42; i++ {
		last = f.order(t, ana.ID, domain.OrderPending)
	}
	require.EqualValues(t, 42, last.ID)
	other := f.order(t, com.ID, domain.OrderShipped)

	found, err := f.orders.List(ctx, domain.OrderFilter{Search: "42"}, 0, 100)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, last.ID, found[0].ID)
	assert.Equal(t, other.ID, found[1].ID)

	found, err = f.orders.List(ctx, domain.OrderFilter{Search: "comércio"}, 0, 100)
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = f.orders.List(ctx, domain.OrderFilter{Status: string(domain.OrderShipped)}, 0, 100)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, other.ID, found[0].ID)

	n, err := f.orders.CountByStatuses(ctx, domain.ActiveOrderStatuses)
	require.NoError(t, err)
	assert.EqualValues(t, 43, n)

	page, err := f.orders.List(ctx, domain.OrderFilter{}, 40, 10)
	require.NoError(t, err)
	assert.Len(t, page, 3)
}

func TestSaleUniquePerOrderAndSum(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana")
	o1 := f.order(t, c.ID, "")
	o2 := f.order(t, c.ID, "")

	s1, err := domain.NewSale(o1.ID, nil, decimal.RequireFromString("100.10"), nil)
	require.NoError(t, err)
	s1.SoldAt = time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.sales.Create(ctx, s1))

	dup, err := domain.NewSale(o1.ID, nil, decimal.NewFromInt(1), nil)
	require.NoError(t, err)
	var ae *domain.AlreadyExistsError
	require.ErrorAs(t, f.sales.Create(ctx, dup), &ae)

	s2, err := domain.NewSale(o2.ID, nil, decimal.RequireFromString("0.20"), nil)
	require.NoError(t, err)
	s2.SoldAt = time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.sales.Create(ctx, s2))

	total, err := f.sales.SumTotal(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "100.3", total.String())

	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	total, err = f.sales.SumTotal(ctx, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, "100.1", total.String())
}

func TestNullifyEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana")
	o := f.order(t, c.ID, "")

	emp, err := domain.NewEmployee("Caio", "caio@loja.com", "hash", nil)
	require.NoError(t, err)
	require.NoError(t, f.employees.Create(ctx, emp))

	s, err := domain.NewSale(o.ID, &emp.ID, decimal.NewFromInt(5), ptr("pix"))
	require.NoError(t, err)
	require.NoError(t, f.sales.Create(ctx, s))

	require.NoError(t, f.sales.NullifyEmployee(ctx, emp.ID))
	got, err := f.sales.GetByOrderID(ctx, o.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EmployeeID)
	assert.Equal(t, "pix", *got.PaymentMethod)
}

func TestRepositoriesJoinAmbientTransaction(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Caneta", 5)

	err := f.db.WithTx(context.Background(), func(ctx context.Context) error {
		ok, err := f.products.DecrementStock(ctx, p.ID, 5)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, f.movements.Append(ctx, &domain.StockMovement{
			ProductID: p.ID, Delta: -5, Balance: 0, Reason: domain.MovementReserve,
		}))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := f.products.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)

	moves, err := f.movements.ListByProduct(context.Background(), p.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestOrderItemsGroupedByOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana")
	o1 := f.order(t, c.ID, "")
	o2 := f.order(t, c.ID, "")
	p := f.product(t, "Caneta", 10)

	for _, oid := range []int64{o1.ID, o1.ID, o2.ID} {
		it, err := domain.NewOrderItem(oid, p.ID, 1, p.Price)
		require.NoError(t, err)
		require.NoError(t, f.items.Create(ctx, it))
	}

	grouped, err := f.items.ListByOrderIDs(ctx, []int64{o1.ID, o2.ID})
	require.NoError(t, err)
	assert.Len(t, grouped[o1.ID], 2)
	assert.Len(t, grouped[o2.ID], 1)

	n, err := f.items.DeleteByProductID(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	names, err := f.products.NamesByIDs(ctx, []int64{p.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{p.ID: "Caneta"}, names)
}
