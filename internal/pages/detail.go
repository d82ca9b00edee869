package pages

import (
	"fmt"
	"strconv"

	"etalase/internal/components"
	"etalase/internal/models"
	"etalase/internal/routes"
	"etalase/internal/view"
)

// CartItemsPath accepts plain form posts that add a product to the cart.
const CartItemsPath = "/cart/items"

// Detail shows one product in full with a quantity form.
func Detail(nav routes.Navigator, p models.Product, cartCount int) *view.Element {
	stock := view.El("p", view.Text(fmt.Sprintf("In stock: %d", p.Stock))).Class("product_detail_stock")
	order := view.El("form",
		hidden(ProductIDField, p.ID),
		view.El("input").
			Set("type", "number").
			Set("name", "quantity").
			Set("value", "1").
			Set("min", "1").
			Set("max", strconv.Itoa(p.Stock)),
		view.El("button", view.Text(components.AddToCartLabel)).Set("type", "submit").Class("product_atc_button"),
	).Set("method", "post").Set("action", CartItemsPath)
	if p.Stock <= 0 {
		stock = view.El("p", view.Text("Out of stock")).Class("product_detail_stock")
		order = nil
	}

	section := view.El("section",
		view.El("img").Class("product_detail_image").Set("src", p.Image).Set("alt", p.Name),
		view.El("h1", view.Text(p.Name)).Class("product_detail_name"),
		view.El("p", view.Text(p.Description)).Class("product_detail_description"),
		view.El("p", view.Text(components.CurrencySymbol+p.Price.StringFixed(2))).Class("product_detail_price"),
		stock,
	).Class("product_detail")
	if order != nil {
		section.Children = append(section.Children, order)
	}

	return Layout(nav, p.Name, cartCount,
		section,
		routes.Anchor(nav, routes.Route{Kind: routes.Catalog}, "back_link", view.Text("Back to catalog")),
	)
}
