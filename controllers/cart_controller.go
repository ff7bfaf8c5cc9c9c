package controllers

import (
	"cart-api/models"
	"cart-api/services"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

func (ctrl *CartController) cartID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid cart ID"})
		return 0, false
	}
	return id, true
}

func (ctrl *CartController) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrCartExists):
		c.JSON(409, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, models.ErrCartNotFound), errors.Is(err, models.ErrLineItemNotFound):
		c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
	default:
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Internal server error", Error: err.Error()})
	}
}

// @Summary Create cart
// @Description Create a new cart for a customer. A customer can own at most one cart.
// @Tags Carts
// @Accept json
// @Produce json
// @Param cart body models.CreateCartRequest true "Cart data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /carts [post]
func (ctrl *CartController) CreateCart(c *gin.Context) {
	var req models.CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	cart, err := ctrl.service.CreateCart(c.Request.Context(), req.CustomerID, req.PurchaseDate, req.Status)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	c.JSON(201, models.Response{
		Success: true,
		Message: "Cart created successfully",
		Data:    cart,
	})
}

// @Summary Get cart
// @Description Get a cart by ID
// @Tags Carts
// @Produce json
// @Param id path int true "Cart ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /carts/{id} [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	id, ok := ctrl.cartID(c)
	if !ok {
		return
	}

	cart, err := ctrl.service.GetCart(c.Request.Context(), id)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Cart retrieved successfully",
		Data:    cart,
	})
}

// @Summary Add product to cart
// @Description Add a product to the cart. Subtotal is computed server-side.
// @Tags Carts
// @Accept json
// @Produce json
// @Param id path int true "Cart ID"
// @Param item body models.AddLineItemRequest true "Line item data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /carts/{id}/items [post]
func (ctrl *CartController) AddLineItem(c *gin.Context) {
	id, ok := ctrl.cartID(c)
	if !ok {
		return
	}

	var req models.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	item, err := ctrl.service.AddLineItem(c.Request.Context(), id, req.ProductID, req.Quantity, req.UnitPrice)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	c.JSON(201, models.Response{
		Success: true,
		Message: "Product added to cart successfully",
		Data:    item,
	})
}

// @Summary List cart products
// @Description List the cart's line items enriched with live catalog details. Items whose catalog lookup fails still appear, carrying a details_error marker.
// @Tags Carts
// @Produce json
// @Param id path int true "Cart ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /carts/{id}/items [get]
func (ctrl *CartController) ListLineItems(c *gin.Context) {
	id, ok := ctrl.cartID(c)
	if !ok {
		return
	}

	items, err := ctrl.service.ListEnrichedLineItems(c.Request.Context(), id)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Cart products retrieved successfully",
		Data:    items,
	})
}

// @Summary Update product quantity
// @Description Update a product's quantity in the cart. Subtotal is recomputed from the stored unit price.
// @Tags Carts
// @Accept json
// @Produce json
// @Param id path int true "Cart ID"
// @Param item body models.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /carts/{id}/items [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	id, ok := ctrl.cartID(c)
	if !ok {
		return
	}

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	item, err := ctrl.service.UpdateQuantity(c.Request.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Product quantity updated successfully",
		Data:    item,
	})
}

// @Summary Remove product from cart
// @Description Remove a product from the cart. If the product appears more than once, the oldest row is removed.
// @Tags Carts
// @Produce json
// @Param id path int true "Cart ID"
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /carts/{id}/items/{productId} [delete]
func (ctrl *CartController) RemoveLineItem(c *gin.Context) {
	id, ok := ctrl.cartID(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		return
	}

	if err := ctrl.service.RemoveLineItem(c.Request.Context(), id, productID); err != nil {
		ctrl.handleError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Product removed from cart successfully",
	})
}
