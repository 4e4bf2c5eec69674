package inbound

import (
	"github.com/intelliverse/intelliverse/internal/lostfound/usecase"
	"github.com/intelliverse/intelliverse/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for the campus lost-and-found board.
type HTTPEndpoint struct {
	uc uc
}

// List returns lost/found items, newest first.
// @Summary List items
// @Description Lists lost and found items with optional status and location filters.
// @Tags LostFound
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (lost, found, claimed)"
// @Param location query string false "Filter by location substring"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} router.successResponse{data=ListResponse} "Item list"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lostfound/items [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	limit, _ := r.GetQueryInt32("limit")
	offset, _ := r.GetQueryInt32("offset")

	resp, err := h.uc.List(r.Context(), usecase.ListInput{
		Status:   r.GetQuery("status"),
		Location: r.GetQuery("location"),
		Limit:    int(limit),
		Offset:   int(offset),
	})
	if err != nil {
		return nil, err
	}

	return ListResponse{
		Items: lo.Map(resp.Items, func(item usecase.ListItem, _ int) ItemResponse {
			return toItemResponse(item)
		}),
		Total: resp.Total,
	}, nil
}

// Detail returns a single item.
// @Summary Item detail
// @Description Returns one lost/found item by ID.
// @Tags LostFound
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} router.successResponse{data=ItemResponse} "Item detail"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Item not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lostfound/items/{id} [get]
func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Detail(r.Context(), usecase.DetailInput{ItemID: id})
	if err != nil {
		return nil, err
	}

	return toItemResponse(*resp), nil
}

// Report files a new lost or found item.
// @Summary Report item
// @Description Files a new lost or found item for the authenticated user.
// @Tags LostFound
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReportRequest true "Report payload"
// @Success 200 {object} router.successResponse{data=ReportResponse} "Report result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 409 {object} router.errorResponse "Duplicate submission"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lostfound/items [post]
func (h *HTTPEndpoint) Report(r *router.Request) (any, error) {
	var req ReportRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Report(r.Context(), usecase.ReportInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Status:         req.Status,
		OccurredAt:     req.OccurredAt,
		ImageKey:       req.ImageKey,
		Attributes:     req.Attributes,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	return ReportResponse{
		ItemID:    resp.ItemID,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// Claim marks an item as claimed by the authenticated user.
// @Summary Claim item
// @Description Marks the item claimed. An item can only be claimed once.
// @Tags LostFound
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} router.successResponse{data=ClaimResponse} "Claim result"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Item not found"
// @Failure 409 {object} router.errorResponse "Item already claimed"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lostfound/items/{id}/claim [put]
func (h *HTTPEndpoint) Claim(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Claim(r.Context(), usecase.ClaimInput{ItemID: id})
	if err != nil {
		return nil, err
	}

	return ClaimResponse{
		ItemID:    resp.ItemID,
		ClaimedBy: resp.ClaimedBy,
	}, nil
}

// Delete removes an item. Admins only.
// @Summary Delete item
// @Description Deletes the item and its image. Restricted to admins.
// @Tags LostFound
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} router.successResponse{data=DeleteResponse} "Delete result"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Not allowed"
// @Failure 404 {object} router.errorResponse "Item not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lostfound/items/{id} [delete]
func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.Delete(r.Context(), usecase.DeleteInput{ItemID: id}); err != nil {
		return nil, err
	}

	return DeleteResponse{}, nil
}

// ImageUpload mints a presigned upload URL for an item image.
// @Summary Presign image upload
// @Description Returns a presigned URL for uploading an item image; the returned key goes into the report payload.
// @Tags LostFound
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ImageUploadRequest true "Upload payload"
// @Success 200 {object} router.successResponse{data=ImageUploadResponse} "Presigned upload"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lostfound/images [post]
func (h *HTTPEndpoint) ImageUpload(r *router.Request) (any, error) {
	var req ImageUploadRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ImageUpload(r.Context(), usecase.ImageUploadInput{
		ContentType: req.ContentType,
		Size:        req.Size,
	})
	if err != nil {
		return nil, err
	}

	return ImageUploadResponse{
		Key:       resp.Key,
		UploadURL: resp.UploadURL,
	}, nil
}

func toItemResponse(item usecase.ListItem) ItemResponse {
	return ItemResponse{
		ItemID:      item.ItemID,
		Title:       item.Title,
		Description: item.Description,
		Location:    item.Location,
		OccurredAt:  item.OccurredAt,
		ImageURL:    item.ImageURL,
		Status:      item.Status,
		Attributes:  item.Attributes,
		ReportedBy:  item.ReportedBy,
		ClaimedBy:   item.ClaimedBy,
		ClaimedAt:   item.ClaimedAt,
		CreatedAt:   item.CreatedAt,
	}
}
