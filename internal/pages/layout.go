// Package pages lays out whole storefront pages around the components.
package pages

import (
	"fmt"

	"etalase/internal/routes"
	"etalase/internal/view"
)

// EventsPath receives interactions posted back from rendered pages.
const EventsPath = "/events"

// ProductIDField carries the product a form belongs to.
const ProductIDField = "product_id"

// Layout wraps body in the document shell with the site navigation.
func Layout(nav routes.Navigator, title string, cartCount int, body ...view.Node) *view.Element {
	return view.El("html",
		view.El("head",
			view.El("meta").Set("charset", "utf-8"),
			view.El("title", view.Text(title+" | etalase")),
		),
		view.El("body",
			view.El("header",
				view.El("nav",
					routes.Anchor(nav, routes.Route{Kind: routes.Catalog}, "nav_catalog", view.Text("Catalog")),
					routes.Anchor(nav, routes.Route{Kind: routes.Cart}, "nav_cart", view.Text(fmt.Sprintf("Cart (%d)", cartCount))),
				),
			),
			view.El("main", body...),
		),
	).Set("lang", "en")
}

// Error is a minimal page for failed requests.
func Error(nav routes.Navigator, status int, message string) *view.Element {
	return Layout(nav, "Error", 0,
		view.El("h1", view.Text(fmt.Sprintf("%d", status))),
		view.El("p", view.Text(message)).Class("error_message"),
		routes.Anchor(nav, routes.Route{Kind: routes.Catalog}, "", view.Text("Back to catalog")),
	)
}

func hidden(name, value string) *view.Element {
	return view.El("input").Set("type", "hidden").Set("name", name).Set("value", value)
}
