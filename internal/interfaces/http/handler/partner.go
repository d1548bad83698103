package handler

import (
	affiliateapp "github.com/cmsplatform/backend/internal/application/affiliate"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartnerHandler handles affiliate partner endpoints
type PartnerHandler struct {
	BaseHandler
	partnerService    PartnerService
	commissionService CommissionService
	earningsService   EarningsService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService PartnerService, commissionService CommissionService, earningsService EarningsService) *PartnerHandler {
	return &PartnerHandler{
		partnerService:    partnerService,
		commissionService: commissionService,
		earningsService:   earningsService,
	}
}

// Create godoc
// @ID           createPartner
// @Summary      Create a partner
// @Description  A unique referral code is generated. Partners start pending unless activate is set.
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body affiliateapp.CreatePartnerRequest true "Partner"
// @Success      201 {object} APIResponse[affiliateapp.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners [post]
func (h *PartnerHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req affiliateapp.CreatePartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = optionalUserID(c)

	partner, err := h.partnerService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, partner)
}

// Get godoc
// @ID           getPartner
// @Summary      Get a partner
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[affiliateapp.PartnerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/{id} [get]
func (h *PartnerHandler) Get(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		partner, err := h.partnerService.GetByID(c.Request.Context(), tenantID, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, partner)
	})
}

// List godoc
// @ID           listPartners
// @Summary      List partners
// @Tags         partners
// @Produce      json
// @Param        search query string false "Matches name, email or referral code"
// @Param        status query string false "Status" Enums(pending, active, suspended, inactive)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]affiliateapp.PartnerResponse]
// @Security     BearerAuth
// @Router       /partners [get]
func (h *PartnerHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter affiliateapp.PartnerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	partners, total, err := h.partnerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, partners, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updatePartner
// @Summary      Update a partner
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body affiliateapp.UpdatePartnerRequest true "Fields to change"
// @Success      200 {object} APIResponse[affiliateapp.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/{id} [put]
func (h *PartnerHandler) Update(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		var req affiliateapp.UpdatePartnerRequest
		if !h.bindJSON(c, &req) {
			return
		}
		partner, err := h.partnerService.Update(c.Request.Context(), tenantID, id, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, partner)
	})
}

// Delete godoc
// @ID           deletePartner
// @Summary      Deactivate a partner
// @Description  Soft delete; the partner becomes inactive
// @Tags         partners
// @Param        id path string true "Partner ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/{id} [delete]
func (h *PartnerHandler) Delete(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		if err := h.partnerService.Delete(c.Request.Context(), tenantID, id); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
	})
}

// Earnings godoc
// @ID           getPartnerEarnings
// @Summary      Partner earnings
// @Description  Earnings for one period (YYYY-MM, default current month), or every stored period with history=true
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        period query string false "Period, YYYY-MM"
// @Param        history query bool false "Return all periods"
// @Success      200 {object} APIResponse[affiliateapp.EarningsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/{id}/earnings [get]
func (h *PartnerHandler) Earnings(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		if c.Query("history") == "true" {
			history, err := h.earningsService.History(c.Request.Context(), tenantID, id)
			if err != nil {
				h.HandleError(c, err)
				return
			}
			h.Success(c, history)
			return
		}

		var filter affiliateapp.EarningsFilter
		if !h.bindQuery(c, &filter) {
			return
		}
		earnings, err := h.earningsService.ForPartner(c.Request.Context(), tenantID, id, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, earnings)
	})
}

// RecordConversion godoc
// @ID           recordPartnerConversion
// @Summary      Record a conversion
// @Description  Attributes an order to the partner and creates a pending commission at the partner's rate
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body affiliateapp.RecordConversionRequest true "Order"
// @Success      201 {object} APIResponse[affiliateapp.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/{id}/conversions [post]
func (h *PartnerHandler) RecordConversion(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		var req affiliateapp.RecordConversionRequest
		if !h.bindJSON(c, &req) {
			return
		}
		commission, err := h.commissionService.RecordConversion(c.Request.Context(), tenantID, id, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Created(c, commission)
	})
}
