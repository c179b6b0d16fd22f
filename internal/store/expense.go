package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/opsdash-dev/opsdash/internal/models"
)

type CreateExpenseInput struct {
	Date        string   `json:"date" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Amount      *float64 `json:"amount" binding:"required"`
	Category    string   `json:"category"`
}

type UpdateExpenseInput struct {
	Date        Optional[string]  `json:"date"`
	Description Optional[string]  `json:"description"`
	Amount      Optional[float64] `json:"amount"`
	Category    Optional[string]  `json:"category"`
}

// CreateExpense appends a ledger line and adds its amount to the project's
// running total in the same transaction.
func CreateExpense(gdb *gorm.DB, projectID uint, in CreateExpenseInput) (*models.Expense, error) {
	if in.Description == "" {
		return nil, invalid("description", "description is required")
	}
	if in.Amount == nil {
		return nil, invalid("amount", "amount is required")
	}
	date, err := ParseDate("date", in.Date)
	if err != nil {
		return nil, err
	}

	var expense models.Expense
	err = gdb.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("project", projectID)
			}
			return err
		}

		expense = models.Expense{
			ProjectID:   projectID,
			Date:        date,
			Description: in.Description,
			Amount:      *in.Amount,
			Category:    in.Category,
		}
		if expense.Category == "" {
			expense.Category = "Other"
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}

		return applySpentDelta(tx, projectID, expense.Amount)
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense applies a sparse patch. When the amount changes, the project
// total moves by the difference, not by the new amount.
func UpdateExpense(gdb *gorm.DB, id uint, in UpdateExpenseInput) (*models.Expense, error) {
	var expense models.Expense

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&expense, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("expense", id)
			}
			return err
		}
		oldAmount := expense.Amount

		if raw, ok := in.Date.Get(); ok {
			date, err := ParseDate("date", raw)
			if err != nil {
				return err
			}
			expense.Date = date
		}
		if description, ok := in.Description.Get(); ok {
			expense.Description = description
		}
		if category, ok := in.Category.Get(); ok {
			expense.Category = category
		}

		amountChanged := false
		if amount, ok := in.Amount.Get(); ok {
			expense.Amount = amount
			amountChanged = true
		}

		if err := tx.Save(&expense).Error; err != nil {
			return err
		}
		if amountChanged {
			return applySpentDelta(tx, expense.ProjectID, expense.Amount-oldAmount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense removes the ledger line and subtracts its amount from the
// project total in the same transaction.
func DeleteExpense(gdb *gorm.DB, id uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.First(&expense, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("expense", id)
			}
			return err
		}

		if err := tx.Delete(&expense).Error; err != nil {
			return err
		}
		return applySpentDelta(tx, expense.ProjectID, -expense.Amount)
	})
}

func applySpentDelta(tx *gorm.DB, projectID uint, delta float64) error {
	return tx.Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("spent", gorm.Expr("spent + ?", delta)).Error
}

// RecomputeProjectSpent rebuilds the running total from the expense ledger.
// The incremental deltas above keep spent consistent on every mutation path
// through this package; this is the repair pass for totals that drifted some
// other way. Idempotent.
func RecomputeProjectSpent(gdb *gorm.DB, projectID uint) (float64, error) {
	var total float64
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("project", projectID)
			}
			return err
		}

		if err := tx.Model(&models.Expense{}).
			Where("project_id = ?", projectID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total).Error; err != nil {
			return err
		}

		return tx.Model(&models.Project{}).
			Where("id = ?", projectID).
			Update("spent", total).Error
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
