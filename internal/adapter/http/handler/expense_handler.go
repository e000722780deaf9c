package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http/dto"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	ListExpenses(ctx context.Context, input usecase.ListExpensesInput) ([]*domain.Expense, error)
}

// ExpenseHandler handles expense query requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// List lists normalized expense records, optionally filtered by user and
// event-timestamp bounds.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListExpensesInput{
		UserID: r.URL.Query().Get("user_id"),
		Limit:  parseIntQuery(r, "limit", usecase.DefaultListLimit),
		Offset: parseIntQuery(r, "offset", 0),
	}

	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start timestamp", err.Error())
			return
		}
		input.Start = &start
	}

	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end timestamp", err.Error())
			return
		}
		input.End = &end
	}

	expenses, err := h.expenseUC.ListExpenses(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesFromDomain(expenses))
}
