package hookbase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strconv"

	"github.com/hookbase/hookbase-go/pkg/apiclient"
)

// ErrPaginationStalled is yielded when a cursor endpoint returns the cursor
// it was called with, which would otherwise loop forever.
var ErrPaginationStalled = errors.New("hookbase: pagination cursor did not advance")

// PaginationInfo is the metadata of an offset-paginated list response.
type PaginationInfo struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// CursorPaginationInfo is the metadata of a cursor-paginated list response.
type CursorPaginationInfo struct {
	HasMore    bool   `json:"hasMore"`
	NextCursor string `json:"nextCursor,omitempty"`
	PrevCursor string `json:"prevCursor,omitempty"`
}

// OffsetPage is one page of an offset-paginated list. Page is 1-indexed.
type OffsetPage[T any] struct {
	Data     []T
	Total    int
	Page     int
	PageSize int
}

// HasMore reports whether pages after this one exist.
func (p OffsetPage[T]) HasMore() bool {
	return p.Page*p.PageSize < p.Total
}

// TotalPages is zero when PageSize is not positive.
func (p OffsetPage[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// CursorPage is one page of a cursor-paginated list.
type CursorPage[T any] struct {
	Data       []T
	HasMore    bool
	NextCursor string
	PrevCursor string
}

// OffsetFetcher loads one page of an offset-paginated list.
type OffsetFetcher[T any] func(ctx context.Context, page, pageSize int) (OffsetPage[T], error)

// CursorFetcher loads the page starting at cursor; the first call gets "".
type CursorFetcher[T any] func(ctx context.Context, cursor string) (CursorPage[T], error)

// PaginateOffset yields every item across pages, starting at page 1. It stops
// after the first error, which is yielded with the zero T.
func PaginateOffset[T any](ctx context.Context, pageSize int, fetch OffsetFetcher[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for page := 1; ; page++ {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}
			p, err := fetch(ctx, page, pageSize)
			if err != nil {
				yield(zero, err)
				return
			}
			for _, item := range p.Data {
				if !yield(item, nil) {
					return
				}
			}
			if len(p.Data) == 0 || !p.HasMore() {
				return
			}
		}
	}
}

// PaginateCursor yields every item across pages by following NextCursor.
func PaginateCursor[T any](ctx context.Context, fetch CursorFetcher[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		cursor := ""
		for {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}
			p, err := fetch(ctx, cursor)
			if err != nil {
				yield(zero, err)
				return
			}
			for _, item := range p.Data {
				if !yield(item, nil) {
					return
				}
			}
			if !p.HasMore || p.NextCursor == "" {
				return
			}
			if p.NextCursor == cursor {
				yield(zero, fmt.Errorf("%w: %q", ErrPaginationStalled, cursor))
				return
			}
			cursor = p.NextCursor
		}
	}
}

// ListOffset fetches one page from an offset-paginated endpoint whose
// response looks like {"<key>": [...], "pagination": {...}}, e.g.
// GET /api/sources with key "sources".
func ListOffset[T any](ctx context.Context, c *Client, path, key string, page, pageSize int, opts ...apiclient.RequestOption) (OffsetPage[T], error) {
	opts = append([]apiclient.RequestOption{
		apiclient.WithQueryParam("page", strconv.Itoa(page)),
		apiclient.WithQueryParam("pageSize", strconv.Itoa(pageSize)),
	}, opts...)

	var envelope map[string]json.RawMessage
	if err := c.Request(ctx, http.MethodGet, path, &envelope, opts...); err != nil {
		return OffsetPage[T]{}, err
	}

	var items []T
	if raw, ok := envelope[key]; ok {
		if err := json.Unmarshal(raw, &items); err != nil {
			return OffsetPage[T]{}, listDecodeError(key, err)
		}
	}
	var info PaginationInfo
	if raw, ok := envelope["pagination"]; ok {
		if err := json.Unmarshal(raw, &info); err != nil {
			return OffsetPage[T]{}, listDecodeError("pagination", err)
		}
	}

	return OffsetPage[T]{
		Data:     items,
		Total:    info.Total,
		Page:     info.Page,
		PageSize: info.PageSize,
	}, nil
}

// ListCursor fetches one page from a cursor-paginated endpoint whose response
// looks like {"data": [...], "pagination": {...}}.
func ListCursor[T any](ctx context.Context, c *Client, path string, limit int, cursor string, opts ...apiclient.RequestOption) (CursorPage[T], error) {
	opts = append([]apiclient.RequestOption{
		apiclient.WithQueryParam("limit", strconv.Itoa(limit)),
		apiclient.WithQueryParam("cursor", cursor),
	}, opts...)

	var envelope struct {
		Data       []T                  `json:"data"`
		Pagination CursorPaginationInfo `json:"pagination"`
	}
	if err := c.Request(ctx, http.MethodGet, path, &envelope, opts...); err != nil {
		return CursorPage[T]{}, err
	}

	return CursorPage[T]{
		Data:       envelope.Data,
		HasMore:    envelope.Pagination.HasMore,
		NextCursor: envelope.Pagination.NextCursor,
		PrevCursor: envelope.Pagination.PrevCursor,
	}, nil
}

func listDecodeError(field string, err error) error {
	return &apiclient.Error{
		Kind:       apiclient.KindDeserialization,
		StatusCode: http.StatusOK,
		Message:    fmt.Sprintf("failed to deserialize %q: %v", field, err),
		Err:        err,
	}
}
