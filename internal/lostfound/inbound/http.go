package inbound

import (
	"context"

	"github.com/intelliverse/intelliverse/internal/lostfound/usecase"
	"github.com/intelliverse/intelliverse/internal/pkg/router"
)

type uc interface {
	Report(ctx context.Context, in usecase.ReportInput) (*usecase.ReportOutput, error)
	List(ctx context.Context, in usecase.ListInput) (*usecase.ListOutput, error)
	Detail(ctx context.Context, in usecase.DetailInput) (*usecase.ListItem, error)
	Claim(ctx context.Context, in usecase.ClaimInput) (*usecase.ClaimOutput, error)
	Delete(ctx context.Context, in usecase.DeleteInput) error
	ImageUpload(ctx context.Context, in usecase.ImageUploadInput) (*usecase.ImageUploadOutput, error)
	ConsumeItemReported(ctx context.Context, in usecase.ConsumeItemReportedInput) error
	ConsumeItemClaimed(ctx context.Context, in usecase.ConsumeItemClaimedInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// All need authenticated; delete additionally needs the admin role.
	r.GET("/api/v1/lostfound/items", end.List)
	r.GET("/api/v1/lostfound/items/:id", end.Detail)
	r.POST("/api/v1/lostfound/items", end.Report)
	r.PUT("/api/v1/lostfound/items/:id/claim", end.Claim)
	r.DELETE("/api/v1/lostfound/items/:id", end.Delete)
	r.POST("/api/v1/lostfound/images", end.ImageUpload)
}
