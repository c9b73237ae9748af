package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rachitgupta/fintrack-be/internal/core/auth"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/services"
	"github.com/rachitgupta/fintrack-be/internal/shared/apperrors"
	"github.com/rachitgupta/fintrack-be/internal/shared/utils"
)

// ReceiptHandler handles receipt analysis requests
type ReceiptHandler struct {
	receiptService *services.ReceiptService
}

func NewReceiptHandler(receiptService *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// UploadReceipt godoc
// @Summary Analyze a receipt
// @Description Upload a receipt image or PDF and get back the extracted fields as a transaction draft
// @Tags Receipts
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param receipt formData file true "Receipt file (JPEG, PNG, GIF or PDF, max 5MB)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/receipts/upload [post]
func (h *ReceiptHandler) UploadReceipt(c *fiber.Ctx) error {
	if _, ok := auth.UserID(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No file uploaded",
		})
	}

	extraction, err := h.receiptService.AnalyzeUpload(c.Context(), file)
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		case errors.Is(err, apperrors.ErrNoReceiptData):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Could not extract data from the receipt. Please ensure the image is clear and contains a valid receipt.",
			})
		case errors.Is(err, apperrors.ErrServiceUnavailable):
			utils.LogError("receipt analysis service unavailable", err, nil)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"message": "Receipt analysis service is not configured or unreachable. Please check the document intelligence credentials and try again.",
			})
		default:
			utils.LogError("receipt analysis failed", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to analyze receipt. Please try again.",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Receipt analyzed successfully",
		"data":    extraction,
	})
}

// CreateTransactionFromReceipt godoc
// @Summary Create transaction from receipt
// @Description Persist a transaction draft confirmed by the user, with receipt metadata attached
// @Tags Receipts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param transaction body models.CreateTransactionRequest true "Transaction data with optional receiptMetadata"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/receipts/create-transaction [post]
func (h *ReceiptHandler) CreateTransactionFromReceipt(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var req models.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	transaction, err := h.receiptService.CreateFromReceipt(userID, &req)
	if err != nil {
		if apperrors.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		utils.LogError("failed to create transaction from receipt", err, map[string]interface{}{"user_id": userID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create transaction. Please try again.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Transaction created successfully from receipt",
		"data":    transaction,
	})
}
