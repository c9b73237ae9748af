package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rachitgupta/fintrack-be/internal/core/auth"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/services"
	"github.com/rachitgupta/fintrack-be/internal/shared/apperrors"
	"github.com/rachitgupta/fintrack-be/internal/shared/utils"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
}

func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// GetTransactions godoc
// @Summary List transactions
// @Description List the authenticated user's transactions, newest first
// @Tags Transactions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.Transaction
// @Failure 500 {object} map[string]interface{}
// @Router /api/transactions [get]
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		utils.LogError("failed to list transactions", err, map[string]interface{}{"user_id": userID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}

	return c.JSON(transactions)
}

// CreateTransaction godoc
// @Summary Create transaction
// @Description Create a transaction owned by the authenticated user
// @Tags Transactions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param transaction body models.CreateTransactionRequest true "Transaction data"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} map[string]interface{}
// @Router /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	var req models.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	transaction, err := h.transactionService.Create(userID, &req)
	if err != nil {
		if apperrors.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		utils.LogError("failed to create transaction", err, map[string]interface{}{"user_id": userID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}

	return c.Status(fiber.StatusCreated).JSON(transaction)
}

// UpdateTransaction godoc
// @Summary Update transaction
// @Description Update the authenticated user's transaction by id
// @Tags Transactions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Transaction ID"
// @Param transaction body models.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	// An unparseable id cannot match any record; same response as a
	// missing one so nothing leaks.
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Transaction not found"})
	}

	var req models.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	transaction, err := h.transactionService.Update(userID, id, &req)
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Transaction not found"})
		default:
			utils.LogError("failed to update transaction", err, map[string]interface{}{"user_id": userID, "id": id})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
		}
	}

	return c.JSON(transaction)
}

// DeleteTransaction godoc
// @Summary Delete transaction
// @Description Delete the authenticated user's transaction by id
// @Tags Transactions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Transaction not found"})
	}

	if err := h.transactionService.Delete(userID, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Transaction not found"})
		}
		utils.LogError("failed to delete transaction", err, map[string]interface{}{"user_id": userID, "id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}
