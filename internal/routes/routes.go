// Package routes defines the storefront's navigable locations and the link
// primitive components use to reach them.
package routes

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"etalase/internal/view"
)

// ErrUnknownRoute is returned by Parse for paths outside the route table.
var ErrUnknownRoute = errors.New("unknown route")

// Kind identifies a route in the table.
type Kind int

const (
	Catalog Kind = iota
	ProductDetail
	Cart
)

func (k Kind) String() string {
	switch k {
	case Catalog:
		return "catalog"
	case ProductDetail:
		return "product_detail"
	case Cart:
		return "cart"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Route is a location in the storefront. ID is only meaningful for
// ProductDetail.
type Route struct {
	Kind Kind
	ID   string
}

// ProductDetailRoute is the detail view for one product.
func ProductDetailRoute(id string) Route {
	return Route{Kind: ProductDetail, ID: id}
}

// Path returns the URL path the route is served on.
func (r Route) Path() string {
	switch r.Kind {
	case ProductDetail:
		return "/products/" + url.PathEscape(r.ID)
	case Cart:
		return "/cart"
	default:
		return "/"
	}
}

// Parse maps a URL path back to its route.
func Parse(path string) (Route, error) {
	switch {
	case path == "/" || path == "":
		return Route{Kind: Catalog}, nil
	case path == "/cart":
		return Route{Kind: Cart}, nil
	case strings.HasPrefix(path, "/products/"):
		raw := strings.TrimPrefix(path, "/products/")
		if raw == "" || strings.Contains(raw, "/") {
			break
		}
		id, err := url.PathUnescape(raw)
		if err != nil {
			return Route{}, fmt.Errorf("%w: %s: %v", ErrUnknownRoute, path, err)
		}
		return ProductDetailRoute(id), nil
	}
	return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

// Navigator performs navigation when a link is activated.
type Navigator interface {
	Navigate(r Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Route)

// Navigate calls f(r).
func (f NavigatorFunc) Navigate(r Route) { f(r) }

// Recorder is a Navigator that remembers the last requested route. The
// storefront uses it to turn a dispatched link click into a redirect.
type Recorder struct {
	mu    sync.Mutex
	last  Route
	count int
}

// Navigate records r.
func (rec *Recorder) Navigate(r Route) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.last = r
	rec.count++
}

// Last returns the most recent route and whether any navigation happened.
func (rec *Recorder) Last() (Route, bool) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.last, rec.count > 0
}

// Count returns how many navigations were requested.
func (rec *Recorder) Count() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.count
}

// Anchor wraps children in a link to r. Activating it calls nav, which may
// be nil when only the href matters.
func Anchor(nav Navigator, r Route, class string, children ...view.Node) *view.Element {
	a := view.El("a", children...).Set("href", r.Path())
	if class != "" {
		a.Class(class)
	}
	return a.On(view.Click, func(*view.Event) {
		if nav != nil {
			nav.Navigate(r)
		}
	})
}
