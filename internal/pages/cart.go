package pages

import (
	"net/url"
	"strconv"

	"etalase/internal/components"
	"etalase/internal/routes"
	"etalase/internal/services"
	"etalase/internal/view"
)

// RemovePath is where the remove button of a cart line posts to.
func RemovePath(productID string) string {
	return CartItemsPath + "/" + url.PathEscape(productID) + "/delete"
}

func money(s string) view.Text {
	return view.Text(components.CurrencySymbol + s)
}

// Cart lists the cart lines with their subtotals and the total.
func Cart(nav routes.Navigator, cart *services.Cart) *view.Element {
	if len(cart.Lines) == 0 {
		return Layout(nav, "Cart", 0,
			view.El("h1", view.Text("Cart")),
			view.El("p", view.Text("Your cart is empty.")).Class("cart_empty"),
			routes.Anchor(nav, routes.Route{Kind: routes.Catalog}, "back_link", view.Text("Continue shopping")),
		)
	}

	rows := view.El("tbody")
	for _, line := range cart.Lines {
		rows.Children = append(rows.Children, view.El("tr",
			view.El("td", routes.Anchor(nav, routes.ProductDetailRoute(line.Product.ID), "", view.Text(line.Product.Name))),
			view.El("td", view.Text(strconv.Itoa(line.Item.Quantity))).Class("cart_quantity"),
			view.El("td", money(line.Product.Price.StringFixed(2))),
			view.El("td", money(line.Subtotal.StringFixed(2))).Class("cart_subtotal"),
			view.El("td", view.El("form",
				view.El("button", view.Text("Remove")).Set("type", "submit"),
			).Set("method", "post").Set("action", RemovePath(line.Product.ID))),
		).Class("cart_line"))
	}

	return Layout(nav, "Cart", cart.Count,
		view.El("h1", view.Text("Cart")),
		view.El("table",
			view.El("thead", view.El("tr",
				view.El("th", view.Text("Product")),
				view.El("th", view.Text("Quantity")),
				view.El("th", view.Text("Price")),
				view.El("th", view.Text("Subtotal")),
				view.El("th"),
			)),
			rows,
		).Class("cart_table"),
		view.El("p", view.Text("Total: "), money(cart.Total.StringFixed(2))).Class("cart_total"),
	)
}
