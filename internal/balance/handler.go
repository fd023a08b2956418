package balance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sohail/spendora/internal/money"
	"github.com/sohail/spendora/pkg/middleware"
	"github.com/sohail/spendora/pkg/response"
)

// SummaryResponse represents the response for a balance summary.
type SummaryResponse struct {
	TotalPaid       money.Money `json:"total_paid"`
	OwedToUser      money.Money `json:"owed_to_user"`
	OwedByUser      money.Money `json:"owed_by_user"`
	Net             money.Money `json:"net"`
	UnparsedRecords int         `json:"unparsed_records"`
}

func toResponse(s Summary) *SummaryResponse {
	return &SummaryResponse{
		TotalPaid:       s.TotalPaid,
		OwedToUser:      s.OwedToUser,
		OwedByUser:      s.OwedByUser,
		Net:             s.Net(),
		UnparsedRecords: s.UnparsedRecords,
	}
}

// Handler handles HTTP requests for balance summaries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Overall)
	r.Get("/group/{groupId}", h.ByGroup)

	return r
}

// Overall handles GET /balances
// @Summary      Get the viewing user's balance summary
// @Description  Aggregate the user's full expense history into paid / owed-to / owed-by totals; unparsed_records reports malformed historical splits that were skipped
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=SummaryResponse}
// @Router       /balances [get]
func (h *Handler) Overall(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "X-User-ID header required")
		return
	}

	summary, err := h.service.ForUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to compute balance summary")
		return
	}

	response.JSON(w, http.StatusOK, toResponse(summary))
}

// ByGroup handles GET /balances/group/{groupId}
// @Summary      Get the viewing user's balance summary within one group
// @Tags         balances
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=SummaryResponse}
// @Router       /balances/group/{groupId} [get]
func (h *Handler) ByGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "X-User-ID header required")
		return
	}
	groupID := chi.URLParam(r, "groupId")

	summary, err := h.service.ForGroup(r.Context(), userID, groupID)
	if err != nil {
		response.InternalError(w, "Failed to compute balance summary")
		return
	}

	response.JSON(w, http.StatusOK, toResponse(summary))
}
