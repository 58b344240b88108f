package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductReserve(t *testing.T) {
	p, err := NewProduct("Caneta", nil, decimal.RequireFromString("2.50"), 5, nil)
	require.NoError(t, err)
	p.ID = 7

	require.NoError(t, p.Reserve(3))
	assert.Equal(t, 2, p.Stock)

	err = p.Reserve(3)
	var ise *InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, int64(7), ise.ProductID)
	assert.Equal(t, 3, ise.Requested)
	assert.Equal(t, 2, ise.Available)
	assert.Equal(t, "Estoque insuficiente para Caneta.", err.Error())
	assert.Equal(t, 2, p.Stock, "failed reserve must not mutate stock")

	p.Release(3)
	assert.Equal(t, 5, p.Stock)
}

func TestProductReserveExactStockReachesZero(t *testing.T) {
	p := &Product{Name: "Lápis", Stock: 4}
	require.NoError(t, p.Reserve(4))
	assert.Zero(t, p.Stock)
}

func TestNewProductValidation(t *testing.T) {
	cases := []struct {
		name  string
		price string
		stock int
		field string
	}{
		{"", "1.00", 1, "nome"},
		{"X", "-1", 1, "preco"},
		{"X", "1.001", 1, "preco"},
		{"X", "1.00", -1, "quantidade_estoque"},
	}
	for _, tc := range cases {
		_, err := NewProduct(tc.name, nil, decimal.RequireFromString(tc.price), tc.stock, nil)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, tc.field)
		assert.Equal(t, tc.field, ve.Field)
	}
}

func TestProductApplyPatch(t *testing.T) {
	desc := "azul"
	p := &Product{ID: 1, Name: "Caneta", Description: &desc, Price: decimal.NewFromInt(2), Stock: 5}

	newName := "Caneta Azul"
	patch := ProductPatch{Name: &newName, Description: Null[string]()}

	require.NoError(t, p.Apply(patch))
	assert.Equal(t, "Caneta Azul", p.Name)
	assert.Nil(t, p.Description)
	assert.Equal(t, 5, p.Stock)

	negative := -1
	err := p.Apply(ProductPatch{Stock: &negative})
	require.Error(t, err)
	assert.Equal(t, 5, p.Stock, "invalid patch leaves entity untouched")
}

func TestOptionalJSON(t *testing.T) {
	var body struct {
		Email Optional[string] `json:"email"`
		Phone Optional[string] `json:"telefone"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"email":"a@b.c"}`), &body))
	assert.True(t, body.Email.Set)
	assert.Equal(t, "a@b.c", *body.Email.Value)
	assert.False(t, body.Phone.Set)

	out, err := json.Marshal(Null[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestNewOrderDefaultsStatus(t *testing.T) {
	o, err := NewOrder(3, "", decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	assert.Equal(t, OrderPending, o.Status)

	_, err = NewOrder(0, "", decimal.Zero)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cliente_id", ve.Field)
}

func TestNewOrderItemRejectsNonPositiveQuantity(t *testing.T) {
	_, err := NewOrderItem(1, 2, 0, decimal.NewFromInt(1))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "quantidade", ve.Field)
}

func TestSalePatchClearsEmployee(t *testing.T) {
	emp := int64(4)
	s := &Sale{ID: 1, OrderID: 2, EmployeeID: &emp, TotalValue: decimal.NewFromInt(10)}
	require.NoError(t, s.Apply(SalePatch{EmployeeID: Null[int64]()}))
	assert.Nil(t, s.EmployeeID)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Produto não encontrado", NotFound(EntityProduct, 9).Error())
	assert.Equal(t, "Venda não encontrada", NotFound(EntitySale, 9).Error())
	assert.Equal(t, "Cliente com id 9 não encontrado.", MissingReference(EntityClient, 9).Error())
	assert.True(t, errors.Is(ErrBadCredentials, ErrUnauthorized))
}

func TestAsStorageConflict(t *testing.T) {
	nf := NotFound(EntityOrder, 1)
	assert.Same(t, nf, AsStorageConflict("criar pedido", nf))

	raw := errors.New("disk full")
	err := AsStorageConflict("criar pedido", fmt.Errorf("insert: %w", raw))
	var sce *StorageConflictError
	require.ErrorAs(t, err, &sce)
	assert.ErrorIs(t, err, raw)
	assert.Nil(t, AsStorageConflict("x", nil))
}
