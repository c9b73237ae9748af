package repositories

import (
	"github.com/google/uuid"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
	"gorm.io/gorm"
)

// TransactionRepo interface defines transaction operations. Every lookup
// is scoped to the owning user; there is no unscoped read path.
type TransactionRepo interface {
	Create(transaction *models.Transaction) error
	ListByUser(userID uuid.UUID) ([]models.Transaction, error)
	GetByID(id, userID uuid.UUID) (*models.Transaction, error)
	Update(transaction *models.Transaction) error
	Delete(id, userID uuid.UUID) (int64, error)
}

type transactionRepo struct {
	db *gorm.DB
}

// NewTransactionRepo creates a new transaction repository
func NewTransactionRepo(db *gorm.DB) TransactionRepo {
	return &transactionRepo{db: db}
}

// Create inserts a new transaction
func (r *transactionRepo) Create(transaction *models.Transaction) error {
	return r.db.Create(transaction).Error
}

// ListByUser retrieves all transactions owned by a user, newest first
func (r *transactionRepo) ListByUser(userID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetByID retrieves a transaction by ID, scoped to its owner
func (r *transactionRepo) GetByID(id, userID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// Update saves a modified transaction
func (r *transactionRepo) Update(transaction *models.Transaction) error {
	return r.db.Save(transaction).Error
}

// Delete removes a transaction scoped to its owner and reports how many
// rows matched
func (r *transactionRepo) Delete(id, userID uuid.UUID) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Transaction{})
	return result.RowsAffected, result.Error
}
