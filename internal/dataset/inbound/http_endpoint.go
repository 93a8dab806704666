package inbound

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/usecase"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkgerror"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Data(ctx context.Context, r *http.Request) (any, error) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		return nil, err
	}

	result, err := h.uc.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return DataResponse{
		Data:       result.Rows,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

func (h *HTTPEndpoint) Summary(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Summary(ctx)
	if err != nil {
		return nil, err
	}

	return SummaryResponse{
		TotalRows:      result.TotalRows,
		Columns:        result.Columns,
		ColumnTypes:    result.ColumnTypes,
		SampleData:     result.SampleRows,
		SourceFilename: result.SourceFilename,
	}, nil
}

func (h *HTTPEndpoint) Schema(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Schema(ctx)
	if err != nil {
		return nil, err
	}

	return SchemaResponse{
		Columns:  result.Columns,
		Dtypes:   result.Dtypes,
		RowCount: result.RowCount,
	}, nil
}

func parseListParams(query url.Values) (usecase.ListParams, error) {
	params := usecase.ListParams{
		Page:     1,
		PageSize: usecase.DefaultPageSize,
		SortBy:   strings.TrimSpace(query.Get("sort_by")),
	}

	if raw := query.Get("page"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return params, pkgerror.NewInvalidInput(errors.New("invalid page"))
		}
		params.Page = value
	}

	if raw := query.Get("page_size"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > usecase.MaxPageSize {
			return params, pkgerror.NewInvalidInput(errors.New("invalid page_size"))
		}
		params.PageSize = value
	}

	if raw := query.Get("sort_desc"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return params, pkgerror.NewInvalidInput(errors.New("invalid sort_desc"))
		}
		params.SortDesc = value
	}

	return params, nil
}
