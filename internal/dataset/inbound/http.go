package inbound

import (
	"context"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/usecase"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkgrouter"
)

type uc interface {
	List(ctx context.Context, params usecase.ListParams) (usecase.ListResult, error)
	Summary(ctx context.Context) (usecase.SummaryResult, error)
	Schema(ctx context.Context) (usecase.SchemaResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/data", end.Data) // ?page=&page_size=&sort_by=&sort_desc=
	r.GET("/api/summary", end.Summary)
	r.GET("/api/schema", end.Schema)
}
