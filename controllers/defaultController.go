package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Relook Stores API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

PRODUCT (admin)
- POST "/product" - Create new product
- GET "/product" - Get all products
- GET "/product/:id" - Get product by ID
- PUT "/product/:id" - Update product
- DELETE "/product/:id" - Delete product

ORDER
- POST "/order" - Create a new pending order with item snapshots
- GET "/order/:orderId" - Get order by ID
- GET "/user/:userId/orders" - Get orders for a specific user
- GET "/orders" - Retrieve all orders (admin)
- PATCH "/order/:orderId" - Update order status (admin)
- DELETE "/order/:orderId" - Delete order by ID (admin)

PAYMENT
- POST "/payments/initialize" - Initialize a Paystack transaction for an order
- POST "/payments/verify" - Verify a Paystack transaction by reference

ADDRESS
- POST "/addresses" - Save a shipping address
- GET "/addresses" - List saved addresses
- PUT "/addresses/:addressId" - Update an address
- DELETE "/addresses/:addressId" - Delete an address
- PATCH "/addresses/:addressId/default" - Set default address`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
