package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/gamify"
	"github.com/jtreml/wayfarer/backend/internal/service"
)

// ExpenseServicer defines the operations the expense handlers use.
type ExpenseServicer interface {
	Create(ctx context.Context, e domain.Expense) (domain.Expense, []gamify.Achievement, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
	Summarize(ctx context.Context, tripID uuid.UUID) (service.ExpenseSummary, error)
	SummarizeCategory(ctx context.Context, tripID uuid.UUID, category string) (service.CategorySummary, error)
}

// ExpenseRequest is the JSON body for creating or updating an expense.
// SpentOn is a date-only string.
type ExpenseRequest struct {
	DayPlanID      *uuid.UUID         `json:"day_plan_id,omitempty"`
	Title          string             `json:"title"`
	Amount         float64            `json:"amount"`
	Currency       string             `json:"currency,omitempty"`
	Category       string             `json:"category,omitempty"`
	SpentOn        openapi_types.Date `json:"spent_on"`
	IsReimbursable bool               `json:"is_reimbursable,omitempty"`
}

// ExpenseResponse is the JSON representation of an expense.
type ExpenseResponse struct {
	ID             uuid.UUID          `json:"id"`
	TripID         uuid.UUID          `json:"trip_id"`
	DayPlanID      *uuid.UUID         `json:"day_plan_id,omitempty"`
	Title          string             `json:"title"`
	Amount         float64            `json:"amount"`
	Currency       string             `json:"currency"`
	Category       string             `json:"category"`
	SpentOn        openapi_types.Date `json:"spent_on"`
	IsReimbursable bool               `json:"is_reimbursable"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ExpenseCreateResponse adds the achievements the new entry unlocked.
type ExpenseCreateResponse struct {
	ExpenseResponse
	UnlockedAchievements []gamify.Achievement `json:"unlocked_achievements,omitempty"`
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	expenses, err := s.svc.Expenses.ListByTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req ExpenseRequest
	if !decode(w, r, &req) {
		return
	}

	created, unlocked, err := s.svc.Expenses.Create(r.Context(), requestToExpense(tripID, uuid.Nil, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ExpenseCreateResponse{
		ExpenseResponse:      expenseToResponse(created),
		UnlockedAchievements: unlocked,
	})
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	e, err := s.svc.Expenses.GetByID(r.Context(), tripID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(e))
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ExpenseRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Expenses.Update(r.Context(), requestToExpense(tripID, id, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(updated))
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.svc.Expenses.Delete(r.Context(), tripID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getExpenseSummary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		out, err := s.svc.Expenses.SummarizeCategory(r.Context(), tripID, category)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	summary, err := s.svc.Expenses.Summarize(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func requestToExpense(tripID, id uuid.UUID, req ExpenseRequest) domain.Expense {
	return domain.Expense{
		ID:             id,
		TripID:         tripID,
		DayPlanID:      req.DayPlanID,
		Title:          req.Title,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Category:       req.Category,
		SpentOn:        req.SpentOn.Time,
		IsReimbursable: req.IsReimbursable,
	}
}

func expenseToResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:             e.ID,
		TripID:         e.TripID,
		DayPlanID:      e.DayPlanID,
		Title:          e.Title,
		Amount:         e.Amount,
		Currency:       e.Currency,
		Category:       e.Category,
		SpentOn:        openapi_types.Date{Time: e.SpentOn},
		IsReimbursable: e.IsReimbursable,
		CreatedAt:      e.CreatedAt,
	}
}
