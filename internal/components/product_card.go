// Package components holds the storefront's reusable view components.
package components

import (
	"etalase/internal/models"
	"etalase/internal/routes"
	"etalase/internal/view"
)

// CurrencySymbol is prefixed verbatim to every displayed price.
const CurrencySymbol = "$"

// AddToCartLabel is the caption of the card's only control.
const AddToCartLabel = "Add To Cart"

// Product is the display record a card shows. Values are rendered as given.
type Product struct {
	ID    string
	Name  string
	Image string
	Price string
}

// ProductFromModel converts a catalog record for display.
func ProductFromModel(p models.Product) Product {
	return Product{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image,
		Price: p.Price.StringFixed(2),
	}
}

// ProductCardProps is the card's input, supplied again on every change.
type ProductCardProps struct {
	Product     Product
	OnAddToCart view.Callback
}

// ProductCard renders one product as a link to its detail page plus an
// "Add To Cart" button. It holds nothing but its latest props.
type ProductCard struct {
	props ProductCardProps
	nav   routes.Navigator
}

// NewProductCard creates a card. nav handles activation of the detail link
// and may be nil.
func NewProductCard(props ProductCardProps, nav routes.Navigator) *ProductCard {
	return &ProductCard{props: props, nav: nav}
}

// Change always re-renders.
func (c *ProductCard) Change(props ProductCardProps) bool {
	c.props = props
	return true
}

// Update always re-renders.
func (c *ProductCard) Update(view.Msg) bool {
	return true
}

// View builds the card tree.
func (c *ProductCard) View() view.Node {
	p := c.props.Product
	onAdd := c.props.OnAddToCart

	return view.El("div",
		view.El("div",
			routes.Anchor(c.nav, routes.ProductDetailRoute(p.ID), "product_card_anchor",
				view.El("img").Class("product_card_image").Set("src", p.Image),
				view.El("div", view.Text(p.Name)).Class("product_card_name"),
				view.El("div", view.Text(CurrencySymbol+p.Price)).Class("product_card_price"),
			),
			view.El("button", view.Text(AddToCartLabel)).
				Class("product_atc_button").
				On(view.Click, func(ev *view.Event) {
					ev.StopPropagation()
					onAdd.Emit()
				}),
		).Class("product_card_container"),
	)
}

var _ view.Component[ProductCardProps] = (*ProductCard)(nil)
