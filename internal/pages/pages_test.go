package pages_test

import (
	"testing"

	"etalase/internal/models"
	"etalase/internal/pages"
	"etalase/internal/routes"
	"etalase/internal/services"
	"etalase/internal/view"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalog = []models.Product{
	{ID: "a1", Name: "Anvil", Image: "/img/anvil.png", Price: decimal.NewFromInt(120), Stock: 1},
	{ID: "w1", Name: "Widget", Image: "/img/widget.png", Price: decimal.RequireFromString("9.99"), Stock: 0},
}

func TestCatalog_ButtonFiresOnlyItsProduct(t *testing.T) {
	var added []string
	rec := &routes.Recorder{}
	page := pages.Catalog(rec, catalog, 0, func(id string) view.Callback {
		return func() { added = append(added, id) }
	})

	buttons := view.FindAll(page, view.ByClass("product_atc_button"))
	require.Len(t, buttons, 2)

	_, err := view.Dispatch(page, buttons[1].Path, view.Click)
	require.NoError(t, err)
	assert.Equal(t, []string{"w1"}, added)
	assert.Equal(t, 0, rec.Count())

	id, ok := pages.CardProductID(page, buttons[1].Path)
	require.True(t, ok)
	assert.Equal(t, "w1", id)
	id, ok = pages.CardProductID(page, buttons[0].Path)
	require.True(t, ok)
	assert.Equal(t, "a1", id)

	_, ok = pages.CardProductID(page, view.Path{0})
	assert.False(t, ok)
	_, ok = pages.CardProductID(page, view.Path{9, 9})
	assert.False(t, ok)
}

func TestCatalog_RenderPostsBack(t *testing.T) {
	page := pages.Catalog(nil, catalog[:1], 2, nil)
	html := view.RenderString(page)

	assert.Contains(t, html, `<form method="post" action="/events" data-product-id="a1" class="catalog_card">`)
	assert.Contains(t, html, `<input type="hidden" name="product_id" value="a1"/>`)
	assert.Contains(t, html, `<div class="product_card_price">$120.00</div>`)
	assert.Contains(t, html, `name="target"`)
	assert.Contains(t, html, `Cart (2)`)
	assert.Contains(t, html, "<!DOCTYPE html>")
}

func TestCatalog_Empty(t *testing.T) {
	html := view.RenderString(pages.Catalog(nil, nil, 0, nil))
	assert.Contains(t, html, "No products yet.")
}

func TestDetail(t *testing.T) {
	html := view.RenderString(pages.Detail(nil, catalog[0], 0))
	assert.Contains(t, html, `<h1 class="product_detail_name">Anvil</h1>`)
	assert.Contains(t, html, `$120.00`)
	assert.Contains(t, html, `action="/cart/items"`)
	assert.Contains(t, html, "In stock: 1")

	html = view.RenderString(pages.Detail(nil, catalog[1], 0))
	assert.Contains(t, html, "Out of stock")
	assert.NotContains(t, html, `action="/cart/items"`)
}

func TestCart(t *testing.T) {
	cart := &services.Cart{
		ID: "c1",
		Lines: []services.CartLine{{
			Item:     models.CartItem{ProductID: "a1", Quantity: 2},
			Product:  catalog[0],
			Subtotal: decimal.NewFromInt(240),
		}},
		Count: 2,
		Total: decimal.NewFromInt(240),
	}
	page := pages.Cart(nil, cart)
	lines := view.FindAll(page, view.ByClass("cart_line"))
	require.Len(t, lines, 1)
	assert.Contains(t, view.TextContent(lines[0].Element), "Anvil")

	totals := view.FindAll(page, view.ByClass("cart_total"))
	require.Len(t, totals, 1)
	assert.Equal(t, "Total: $240.00", view.TextContent(totals[0].Element))

	html := view.RenderString(page)
	assert.Contains(t, html, `action="/cart/items/a1/delete"`)

	empty := view.RenderString(pages.Cart(nil, &services.Cart{ID: "c1"}))
	assert.Contains(t, empty, "Your cart is empty.")
}

func TestError(t *testing.T) {
	html := view.RenderString(pages.Error(nil, 404, "Product not found"))
	assert.Contains(t, html, "<h1>404</h1>")
	assert.Contains(t, html, "Product not found")
}
