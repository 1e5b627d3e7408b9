package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/watchDOGGGG/relook-online-store/middlewares"
	"github.com/watchDOGGGG/relook-online-store/models"
	"gorm.io/gorm"
)

type OrderController struct {
	db *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{db: db}
}

type createOrderItem struct {
	ProductID    *string `json:"productId"`
	ProductName  string  `json:"productName" binding:"required"`
	ProductPrice int64   `json:"productPrice" binding:"required"`
	Size         int     `json:"size"`
	Quantity     int     `json:"quantity" binding:"required,min=1"`
}

type createOrderRequest struct {
	TotalAmount        int64             `json:"totalAmount" binding:"required"`
	ShippingFirstName  string            `json:"shippingFirstName" binding:"required"`
	ShippingLastName   string            `json:"shippingLastName" binding:"required"`
	ShippingEmail      string            `json:"shippingEmail" binding:"required,email"`
	ShippingPhone      string            `json:"shippingPhone" binding:"required"`
	ShippingAddress    string            `json:"shippingAddress" binding:"required"`
	ShippingCity       string            `json:"shippingCity" binding:"required"`
	ShippingState      string            `json:"shippingState" binding:"required"`
	ShippingCountry    string            `json:"shippingCountry" binding:"required"`
	ShippingPostalCode *string           `json:"shippingPostalCode"`
	OrderItems         []createOrderItem `json:"orderItems" binding:"required,min=1"`
}

// CreateOrder persists a pending order together with its item snapshots in
// one transaction. Item names and prices come from the checkout payload and
// are frozen here; payment initialization is a separate call.
func (c *OrderController) CreateOrder(ctx *gin.Context) {
	var orderInfo createOrderRequest
	if err := ctx.ShouldBindJSON(&orderInfo); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := middlewares.AuthUserID(ctx)
	if userID == "" {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order := models.Order{
		UserID:             &userID,
		Status:             models.OrderStatusPending,
		TotalAmount:        orderInfo.TotalAmount,
		ShippingFirstName:  orderInfo.ShippingFirstName,
		ShippingLastName:   orderInfo.ShippingLastName,
		ShippingEmail:      orderInfo.ShippingEmail,
		ShippingPhone:      orderInfo.ShippingPhone,
		ShippingAddress:    orderInfo.ShippingAddress,
		ShippingCity:       orderInfo.ShippingCity,
		ShippingState:      orderInfo.ShippingState,
		ShippingCountry:    orderInfo.ShippingCountry,
		ShippingPostalCode: orderInfo.ShippingPostalCode,
		PaymentProvider:    "paystack",
	}

	tx := c.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create order")
		return
	}

	for _, item := range orderInfo.OrderItems {
		orderItem := models.OrderItem{
			OrderID:      order.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Size:         item.Size,
			Quantity:     item.Quantity,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create order items")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save order")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order created successfully.",
		"orderId": order.ID,
	})
}

func (c *OrderController) GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := c.db.Preload("OrderItems")

	if search := ctx.Query("search"); search != "" {
		query = query.Where("id LIKE ?", "%"+search+"%")
	}

	query = query.Order("created_at " + sortOrder)

	result := query.Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := c.db.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("id LIKE ?", "%"+search+"%")
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func (c *OrderController) GetOrdersByCustomerId(ctx *gin.Context) {
	userId := ctx.Param("userId")

	// Order history is visible to its owner and to admins only
	if middlewares.AuthUserID(ctx) != userId && middlewares.AuthRole(ctx) != "admin" {
		sendErrorResponse(ctx, http.StatusForbidden, "Not authorized")
		return
	}

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := c.db.Preload("OrderItems").Where("user_id = ?", userId)

	if search := ctx.Query("search"); search != "" {
		query = query.Where("id LIKE ?", "%"+search+"%")
	}

	var orders []models.Order
	if result := query.Order("created_at " + sortOrder).Find(&orders); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
	})
}

func (c *OrderController) GetOrderById(ctx *gin.Context) {
	orderId := ctx.Param("orderId")

	var order models.Order
	result := c.db.Preload("OrderItems").Where("id = ?", orderId).First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		}
		return
	}

	userID := middlewares.AuthUserID(ctx)
	isOwner := order.UserID != nil && *order.UserID == userID
	if !isOwner && middlewares.AuthRole(ctx) != "admin" {
		// Same response as a missing order so foreign order ids leak nothing
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"order": order,
	})
}

// UpdateOrderStatus applies an administrative status change, rejecting any
// move that is not on the forward path of the order lifecycle.
func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId := ctx.Param("orderId")

	var order models.Order
	if err := c.db.Where("id = ?", orderId).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		}
		return
	}

	if !models.CanTransitionOrderStatus(order.Status, orderStatusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid status transition from "+order.Status+" to "+orderStatusData.Status)
		return
	}

	result := c.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderId, order.Status).
		Update("status", orderStatusData.Status)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to update order status")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusConflict, "Order status changed concurrently, refresh and retry")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
	})
}

func (c *OrderController) DeleteOrder(ctx *gin.Context) {
	orderId := ctx.Param("orderId")

	if result := c.db.Where("id = ?", orderId).Delete(&models.Order{}); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to delete order.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

func (c *OrderController) GetUndeliveredOrders(ctx *gin.Context) {
	var count int64

	result := c.db.
		Model(&models.Order{}).
		Where("status NOT IN ?", []string{models.OrderStatusDelivered, models.OrderStatusCancelled}).
		Count(&count)

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count undelivered orders"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"undeliveredOrderCount": count})
}
