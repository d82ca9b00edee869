package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"etalase/internal/pages"
	"etalase/internal/repositories"
	"etalase/internal/routes"
	"etalase/internal/services"
	"etalase/internal/view"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartCookie holds the anonymous shopper's cart ID.
const CartCookie = "cart_id"

const cartCookieTTL = 30 * 24 * time.Hour

// StorefrontHandler serves the server-rendered shop pages and turns posted
// interactions back into component events.
type StorefrontHandler struct {
	products *services.ProductService
	carts    *services.CartService
	lg       *zap.Logger
}

// NewStorefrontHandler creates a new StorefrontHandler.
func NewStorefrontHandler(products *services.ProductService, carts *services.CartService, lg *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		products: products,
		carts:    carts,
		lg:       lg,
	}
}

// RegisterRoutes registers the HTML routes.
func (h *StorefrontHandler) RegisterRoutes(router fiber.Router) {
	router.Get(routes.Route{Kind: routes.Catalog}.Path(), h.HandleCatalog)
	router.Get("/products/:id", h.HandleProduct)
	router.Get(routes.Route{Kind: routes.Cart}.Path(), h.HandleCart)
	router.Post(pages.EventsPath, h.HandleEvent)
	router.Post(pages.CartItemsPath, h.HandleAddItem)
	router.Post(pages.CartItemsPath+"/:productId/delete", h.HandleRemoveItem)
}

func (h *StorefrontHandler) cartID(c *fiber.Ctx) string {
	if id := c.Cookies(CartCookie); id != "" {
		return id
	}
	id := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     CartCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(cartCookieTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id
}

func (h *StorefrontHandler) cartCount(cartID string) int {
	cart, err := h.carts.GetCart(cartID)
	if err != nil {
		h.lg.Warn("Could not count cart items", zap.String("cart_id", cartID), zap.Error(err))
		return 0
	}
	return cart.Count
}

func renderPage(c *fiber.Ctx, status int, page view.Node) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString(view.RenderString(page))
}

func (h *StorefrontHandler) renderError(c *fiber.Ctx, message string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.lg.Error(message, zap.String("path", c.Path()), zap.Error(err))
	}
	return renderPage(c, status, pages.Error(nil, status, message))
}

// HandleCatalog renders one product card per catalog entry.
func (h *StorefrontHandler) HandleCatalog(c *fiber.Ctx) error {
	products, err := h.products.GetAllProducts()
	if err != nil {
		return h.renderError(c, "Could not load the catalog", err)
	}
	cartID := h.cartID(c)
	return renderPage(c, fiber.StatusOK, pages.Catalog(nil, products, h.cartCount(cartID), nil))
}

// HandleProduct renders the detail view of one product.
func (h *StorefrontHandler) HandleProduct(c *fiber.Ctx) error {
	productID, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		return renderPage(c, fiber.StatusBadRequest, pages.Error(nil, fiber.StatusBadRequest, "Malformed product ID"))
	}
	product, err := h.products.GetProductByID(productID)
	if err != nil {
		return h.renderError(c, "Product not found", err)
	}
	return renderPage(c, fiber.StatusOK, pages.Detail(nil, *product, h.cartCount(h.cartID(c))))
}

// HandleCart renders the shopper's cart.
func (h *StorefrontHandler) HandleCart(c *fiber.Ctx) error {
	cart, err := h.carts.GetCart(h.cartID(c))
	if err != nil {
		return h.renderError(c, "Could not load your cart", err)
	}
	return renderPage(c, fiber.StatusOK, pages.Cart(nil, cart))
}

// HandleEvent receives a click posted by a catalog form. The catalog is
// rebuilt with live callbacks and the click is dispatched at the posted node
// path, so the page's own handlers decide what happens: a card button adds
// to the cart, a link navigates.
func (h *StorefrontHandler) HandleEvent(c *fiber.Ctx) error {
	target, err := view.ParsePath(c.FormValue(view.TargetField))
	if err != nil {
		return renderPage(c, fiber.StatusBadRequest, pages.Error(nil, fiber.StatusBadRequest, "Malformed event target"))
	}
	productID := c.FormValue(pages.ProductIDField)

	products, err := h.products.GetAllProducts()
	if err != nil {
		return h.renderError(c, "Could not load the catalog", err)
	}

	cartID := h.cartID(c)
	nav := &routes.Recorder{}
	var addErr error
	page := pages.Catalog(nav, products, 0, func(id string) view.Callback {
		return func() {
			_, addErr = h.carts.AddItem(cartID, id, 1)
		}
	})

	if owner, ok := pages.CardProductID(page, target); !ok || owner != productID {
		h.lg.Info("Stale catalog event",
			zap.String("target", target.String()),
			zap.String("product_id", productID))
		return renderPage(c, fiber.StatusConflict, pages.Error(nil, fiber.StatusConflict, "The catalog changed, please try again."))
	}

	if _, err := view.Dispatch(page, target, view.Click); err != nil {
		return renderPage(c, fiber.StatusBadRequest, pages.Error(nil, fiber.StatusBadRequest, "Unknown event target"))
	}
	if addErr != nil {
		return h.renderError(c, addErrorMessage(addErr), addErr)
	}

	if r, ok := nav.Last(); ok {
		return c.Redirect(r.Path(), fiber.StatusSeeOther)
	}
	return c.Redirect(routes.Route{Kind: routes.Catalog}.Path(), fiber.StatusSeeOther)
}

func addErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrInsufficientStock):
		return "Not enough stock for that product."
	case errors.Is(err, repositories.ErrNotFound):
		return "Product not found"
	default:
		return "Could not add the product to your cart"
	}
}

// HandleAddItem handles the quantity form on the detail page.
func (h *StorefrontHandler) HandleAddItem(c *fiber.Ctx) error {
	productID := c.FormValue(pages.ProductIDField)
	quantity := 1
	if raw := c.FormValue("quantity"); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			return renderPage(c, fiber.StatusBadRequest, pages.Error(nil, fiber.StatusBadRequest, "Quantity must be a number"))
		}
		quantity = q
	}

	if _, err := h.carts.AddItem(h.cartID(c), productID, quantity); err != nil {
		return h.renderError(c, addErrorMessage(err), err)
	}
	return c.Redirect(routes.Route{Kind: routes.Cart}.Path(), fiber.StatusSeeOther)
}

// HandleRemoveItem removes one line from the shopper's cart.
func (h *StorefrontHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID, err := url.PathUnescape(c.Params("productId"))
	if err != nil {
		return renderPage(c, fiber.StatusBadRequest, pages.Error(nil, fiber.StatusBadRequest, "Malformed product ID"))
	}
	if err := h.carts.RemoveItem(h.cartID(c), productID); err != nil {
		return h.renderError(c, "That product is not in your cart", err)
	}
	return c.Redirect(routes.Route{Kind: routes.Cart}.Path(), fiber.StatusSeeOther)
}
