package handlers

import (
	"fmt"

	"etalase/internal/models"
	"etalase/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler serves the authenticated user's cart over JSON. The user ID
// from the token doubles as the cart ID.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
	lg       *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, lg *zap.Logger) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: models.NewValidator(),
		lg:       lg,
	}
}

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// RegisterRoutes registers the cart routes. They expect AuthRequired to
// have run.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

func userCart(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("user_id").(string)
	return id, ok && id != ""
}

func noCart(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Token carries no user",
	})
}

// HandleGetCart returns the priced cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cartID, ok := userCart(c)
	if !ok {
		return noCart(c)
	}
	cart, err := h.service.GetCart(cartID)
	if err != nil {
		return respondError(c, h.lg, "Could not retrieve cart", err)
	}
	return c.JSON(cart)
}

// HandleAddItem adds a product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	cartID, ok := userCart(c)
	if !ok {
		return noCart(c)
	}
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  models.ValidationErrors(err),
		})
	}

	item, err := h.service.AddItem(cartID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, h.lg, "Could not add item to cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleRemoveItem drops a product from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cartID, ok := userCart(c)
	if !ok {
		return noCart(c)
	}
	productID := c.Params("productId")
	if err := h.service.RemoveItem(cartID, productID); err != nil {
		return respondError(c, h.lg, fmt.Sprintf("Could not remove product %s from cart", productID), err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s removed from cart", productID),
	})
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	cartID, ok := userCart(c)
	if !ok {
		return noCart(c)
	}
	if err := h.service.Clear(cartID); err != nil {
		return respondError(c, h.lg, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
