package pages

import (
	"etalase/internal/components"
	"etalase/internal/models"
	"etalase/internal/routes"
	"etalase/internal/view"
)

// AddToCart returns the callback a card fires for productID.
type AddToCart func(productID string) view.Callback

// Catalog lays out one product card per product, in the given order. Each
// card sits in its own form so its button posts back to EventsPath.
func Catalog(nav routes.Navigator, products []models.Product, cartCount int, onAdd AddToCart) *view.Element {
	grid := view.El("div").Class("catalog_grid")
	for _, p := range products {
		var cb view.Callback
		if onAdd != nil {
			cb = onAdd(p.ID)
		}
		card := view.Mount[components.ProductCardProps](components.NewProductCard(components.ProductCardProps{
			Product:     components.ProductFromModel(p),
			OnAddToCart: cb,
		}, nav))
		form := view.El("form", hidden(ProductIDField, p.ID), card.Tree()).
			Set("method", "post").
			Set("action", EventsPath).
			Set("data-product-id", p.ID).
			Class("catalog_card")
		grid.Children = append(grid.Children, form)
	}

	var content view.Node = grid
	if len(products) == 0 {
		content = view.El("p", view.Text("No products yet.")).Class("catalog_empty")
	}
	return Layout(nav, "Catalog", cartCount,
		view.El("h1", view.Text("Catalog")),
		content,
	)
}

// CardProductID returns the product whose card contains the node at p.
func CardProductID(page view.Node, p view.Path) (string, bool) {
	chain, err := view.Ancestors(page, p)
	if err != nil {
		return "", false
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].Tag != "form" {
			continue
		}
		if id, ok := chain[i].Attr("data-product-id"); ok {
			return id, true
		}
	}
	return "", false
}
