// Package dataset wires the processed-dataset read API: filesystem store,
// query usecase, and HTTP endpoints.
package dataset

import (
	"context"
	"log/slog"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/inbound"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/store"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/usecase"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkgconfig"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkgrouter"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkgroutine"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
}

func New(dep Dependency) (func(context.Context) error, error) {
	storage := store.NewFS(dep.Config.GetString("dataset.processed_dir"))

	uc := usecase.New(usecase.Dependency{Store: storage})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	// Probe the processed directory once at startup so operators can see
	// from the logs which dataset the API will serve.
	dep.Goroutine.Go(dep.Context, func(ctx context.Context) error {
		ref, ok, err := storage.Current(ctx)
		if err != nil {
			slog.WarnContext(ctx, "dataset probe failed", "error", err)
			return nil
		}
		if !ok {
			slog.InfoContext(ctx, "no processed dataset available yet")
			return nil
		}
		slog.InfoContext(ctx, "serving dataset", "path", ref.Path, "modified", ref.ModTime)
		return nil
	})

	return nil, nil
}
