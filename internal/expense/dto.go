package expense

import (
	"log/slog"

	"github.com/sohail/spendora/internal/expense/split"
	"github.com/sohail/spendora/internal/money"
)

// ParticipantInput names one participant of a proposed split. Amount is the
// participant's explicit contribution as a decimal string and is required
// for CUSTOM splits only.
type ParticipantInput struct {
	UserID      string  `json:"user_id" validate:"required"`
	DisplayName string  `json:"display_name,omitempty"`
	Amount      *string `json:"amount,omitempty"`
}

// CreateExpenseRequest represents the request to create an expense.
// Amount is a decimal string such as "10.50". Group-scoped expenses carry a
// split; personal expenses (no group_id) must not name participants.
type CreateExpenseRequest struct {
	GroupID      *string             `json:"group_id,omitempty"`
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       string              `json:"amount" validate:"required"`
	Category     string              `json:"category,omitempty"`
	SplitMode    string              `json:"split_mode,omitempty" validate:"omitempty,oneof=EQUAL CUSTOM"`
	Participants []*ParticipantInput `json:"participants,omitempty"`
}

// ShareResponse is one participant's portion in an expense response.
type ShareResponse struct {
	ParticipantID   string      `json:"participant_id"`
	ParticipantName string      `json:"participant_name,omitempty"`
	Amount          money.Money `json:"amount"`
}

// ExpenseResponse represents the response for an expense.
type ExpenseResponse struct {
	ID          string           `json:"id"`
	GroupID     *string          `json:"group_id,omitempty"`
	PayerID     string           `json:"payer_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	Description string           `json:"description"`
	Amount      money.Money      `json:"amount"`
	Category    string           `json:"category"`
	SplitMode   split.Mode       `json:"split_mode,omitempty"`
	Shares      []*ShareResponse `json:"shares,omitempty"`
	CreatedAt   string           `json:"created_at"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO. An
// undecodable split blob fails closed: the response simply omits the share
// breakdown instead of erroring out of the render path.
func (e *Expense) ToResponse() *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.Payer.ID,
		PayerName:   e.Payer.DisplayName,
		Description: e.Description,
		Amount:      e.Total,
		Category:    e.Category,
		SplitMode:   e.SplitMode,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if e.HasSplit() {
		sp, err := e.Split()
		if err != nil {
			slog.Warn("expense has unparseable split data", "expense_id", e.ID, "error", err)
			return resp
		}
		resp.Shares = make([]*ShareResponse, len(sp.Shares))
		for i, sh := range sp.Shares {
			resp.Shares[i] = &ShareResponse{
				ParticipantID:   sh.Participant.ID,
				ParticipantName: sh.Participant.DisplayName,
				Amount:          sh.Amount,
			}
		}
	}

	return resp
}
