package handler

import (
	"context"

	affiliateapp "github.com/cmsplatform/backend/internal/application/affiliate"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommissionHandler handles commission review and payout endpoints
type CommissionHandler struct {
	BaseHandler
	commissionService CommissionService
	earningsService   EarningsService
}

// NewCommissionHandler creates a new CommissionHandler
func NewCommissionHandler(commissionService CommissionService, earningsService EarningsService) *CommissionHandler {
	return &CommissionHandler{
		commissionService: commissionService,
		earningsService:   earningsService,
	}
}

// List godoc
// @ID           listCommissions
// @Summary      List commissions
// @Tags         commissions
// @Produce      json
// @Param        partner_id query string false "Partner ID" format(uuid)
// @Param        status query string false "Status" Enums(pending, approved, paid, rejected, cancelled)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]affiliateapp.CommissionResponse]
// @Security     BearerAuth
// @Router       /commissions [get]
func (h *CommissionHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter affiliateapp.CommissionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.PartnerID, ok = h.queryUUID(c, "partner_id"); !ok {
		return
	}

	commissions, total, err := h.commissionService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, commissions, total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getCommission
// @Summary      Get a commission
// @Tags         commissions
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Success      200 {object} APIResponse[affiliateapp.CommissionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id} [get]
func (h *CommissionHandler) Get(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		commission, err := h.commissionService.GetByID(c.Request.Context(), tenantID, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, commission)
	})
}

// Approve godoc
// @ID           approveCommission
// @Summary      Approve a pending commission
// @Tags         commissions
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Success      200 {object} APIResponse[affiliateapp.CommissionResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id}/approve [post]
func (h *CommissionHandler) Approve(c *gin.Context) {
	h.transition(c, false, func(ctx context.Context, tenantID, id uuid.UUID, _ affiliateapp.TransitionCommissionRequest) (*affiliateapp.CommissionResponse, error) {
		return h.commissionService.Approve(ctx, tenantID, id)
	})
}

// Reject godoc
// @ID           rejectCommission
// @Summary      Reject a pending commission
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Param        request body affiliateapp.TransitionCommissionRequest true "Reason"
// @Success      200 {object} APIResponse[affiliateapp.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id}/reject [post]
func (h *CommissionHandler) Reject(c *gin.Context) {
	h.transition(c, true, h.commissionService.Reject)
}

// Pay godoc
// @ID           payCommission
// @Summary      Mark an approved commission as paid
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Param        request body affiliateapp.TransitionCommissionRequest false "Payout reference"
// @Success      200 {object} APIResponse[affiliateapp.CommissionResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id}/pay [post]
func (h *CommissionHandler) Pay(c *gin.Context) {
	h.transition(c, true, h.commissionService.Pay)
}

// Cancel godoc
// @ID           cancelCommission
// @Summary      Cancel a pending or approved commission
// @Tags         commissions
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Success      200 {object} APIResponse[affiliateapp.CommissionResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id}/cancel [post]
func (h *CommissionHandler) Cancel(c *gin.Context) {
	h.transition(c, false, func(ctx context.Context, tenantID, id uuid.UUID, _ affiliateapp.TransitionCommissionRequest) (*affiliateapp.CommissionResponse, error) {
		return h.commissionService.Cancel(ctx, tenantID, id)
	})
}

// EarningsSummary godoc
// @ID           getEarningsSummary
// @Summary      Earnings across partners
// @Description  Totals for one period (YYYY-MM, default current month)
// @Tags         commissions
// @Produce      json
// @Param        period query string false "Period, YYYY-MM"
// @Success      200 {object} APIResponse[affiliateapp.EarningsSummaryResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /earnings [get]
func (h *CommissionHandler) EarningsSummary(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter affiliateapp.EarningsFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	summary, err := h.earningsService.Summary(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

type commissionTransition func(ctx context.Context, tenantID, id uuid.UUID, req affiliateapp.TransitionCommissionRequest) (*affiliateapp.CommissionResponse, error)

func (h *CommissionHandler) transition(c *gin.Context, withBody bool, apply commissionTransition) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		var req affiliateapp.TransitionCommissionRequest
		if withBody && c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
			return
		}
		commission, err := apply(c.Request.Context(), tenantID, id, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, commission)
	})
}
