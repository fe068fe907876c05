package hookbase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hookbase "github.com/hookbase/hookbase-go"
	"github.com/hookbase/hookbase-go/pkg/apiclient"
)

func TestOffsetPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page       hookbase.OffsetPage[int]
		hasMore    bool
		totalPages int
	}{
		{hookbase.OffsetPage[int]{Total: 45, Page: 1, PageSize: 20}, true, 3},
		{hookbase.OffsetPage[int]{Total: 45, Page: 3, PageSize: 20}, false, 3},
		{hookbase.OffsetPage[int]{Total: 40, Page: 2, PageSize: 20}, false, 2},
		{hookbase.OffsetPage[int]{Total: 0, Page: 1, PageSize: 20}, false, 0},
		{hookbase.OffsetPage[int]{Total: 5, Page: 1, PageSize: 0}, true, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.hasMore, tt.page.HasMore(), "%+v", tt.page)
		assert.Equal(t, tt.totalPages, tt.page.TotalPages(), "%+v", tt.page)
	}
}

func TestPaginateOffset(t *testing.T) {
	t.Parallel()

	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}
	var pages []int
	fetch := func(_ context.Context, page, size int) (hookbase.OffsetPage[int], error) {
		pages = append(pages, page)
		start := min((page-1)*size, len(items))
		end := min(start+size, len(items))
		return hookbase.OffsetPage[int]{Data: items[start:end], Total: len(items), Page: page, PageSize: size}, nil
	}

	var got []int
	for v, err := range hookbase.PaginateOffset(context.Background(), 20, fetch) {
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, items, got)
	assert.Equal(t, []int{1, 2, 3}, pages)
}

func TestPaginateOffset_StopsEarly(t *testing.T) {
	t.Parallel()

	var fetched int
	fetch := func(_ context.Context, page, size int) (hookbase.OffsetPage[int], error) {
		fetched++
		return hookbase.OffsetPage[int]{Data: []int{page * 10, page*10 + 1}, Total: 100, Page: page, PageSize: size}, nil
	}

	var got []int
	for v, err := range hookbase.PaginateOffset(context.Background(), 2, fetch) {
		require.NoError(t, err)
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []int{10, 11, 20}, got)
	assert.Equal(t, 2, fetched)
}

func TestPaginateOffset_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	fetch := func(_ context.Context, page, size int) (hookbase.OffsetPage[int], error) {
		if page == 2 {
			return hookbase.OffsetPage[int]{}, boom
		}
		return hookbase.OffsetPage[int]{Data: []int{1}, Total: 10, Page: page, PageSize: 1}, nil
	}

	var got []int
	var errs []error
	for v, err := range hookbase.PaginateOffset(context.Background(), 1, fetch) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1}, got)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
}

func TestPaginateOffset_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, err := range hookbase.PaginateOffset(ctx, 10, func(context.Context, int, int) (hookbase.OffsetPage[int], error) {
		t.Fatal("fetch must not run after cancellation")
		return hookbase.OffsetPage[int]{}, nil
	}) {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestPaginateCursor(t *testing.T) {
	t.Parallel()

	pages := map[string]hookbase.CursorPage[string]{
		"":   {Data: []string{"a", "b"}, HasMore: true, NextCursor: "c1"},
		"c1": {Data: []string{"c"}, HasMore: true, NextCursor: "c2", PrevCursor: ""},
		"c2": {Data: []string{"d"}, HasMore: false, PrevCursor: "c1"},
	}
	var cursors []string
	fetch := func(_ context.Context, cursor string) (hookbase.CursorPage[string], error) {
		cursors = append(cursors, cursor)
		return pages[cursor], nil
	}

	var got []string
	for v, err := range hookbase.PaginateCursor(context.Background(), fetch) {
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Equal(t, []string{"", "c1", "c2"}, cursors)
}

func TestPaginateCursor_Stalled(t *testing.T) {
	t.Parallel()

	fetch := func(_ context.Context, cursor string) (hookbase.CursorPage[string], error) {
		return hookbase.CursorPage[string]{Data: []string{"x"}, HasMore: true, NextCursor: "same"}, nil
	}

	var lastErr error
	count := 0
	for _, err := range hookbase.PaginateCursor(context.Background(), fetch) {
		if err != nil {
			lastErr = err
			continue
		}
		count++
	}
	assert.ErrorIs(t, lastErr, hookbase.ErrPaginationStalled)
	assert.Equal(t, 2, count)
}

type source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestListOffset_AgainstServer(t *testing.T) {
	t.Parallel()

	const total = 5
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sources", r.URL.Path)
		assert.Equal(t, "stripe", r.URL.Query().Get("search"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		var items []string
		for i := (page - 1) * size; i < min(page*size, total); i++ {
			items = append(items, fmt.Sprintf(`{"id":"src_%d","name":"stripe"}`, i))
		}
		body := `{"sources":[` + strings.Join(items, ",") + `],"pagination":{"total":` + strconv.Itoa(total) +
			`,"page":` + strconv.Itoa(page) + `,"pageSize":` + strconv.Itoa(size) + `}}`
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	c, err := hookbase.New("whr_key", hookbase.WithBaseURL(server.URL))
	require.NoError(t, err)

	var ids []string
	fetch := func(ctx context.Context, page, size int) (hookbase.OffsetPage[source], error) {
		return hookbase.ListOffset[source](ctx, c, "/api/sources", "sources", page, size,
			apiclient.WithQueryParam("search", "stripe"))
	}
	for s, err := range hookbase.PaginateOffset(context.Background(), 2, fetch) {
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"src_0", "src_1", "src_2", "src_3", "src_4"}, ids)
}

func TestListCursor_AgainstServer(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		switch r.URL.Query().Get("cursor") {
		case "":
			_, _ = w.Write([]byte(`{"data":[{"id":"app_1"}],"pagination":{"hasMore":true,"nextCursor":"n1"}}`))
		case "n1":
			_, _ = w.Write([]byte(`{"data":[{"id":"app_2"}],"pagination":{"hasMore":false,"prevCursor":"n0"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c, err := hookbase.New("whr_key", hookbase.WithBaseURL(server.URL))
	require.NoError(t, err)

	first, err := hookbase.ListCursor[source](context.Background(), c, "/api/webhook-applications", 50, "")
	require.NoError(t, err)
	assert.True(t, first.HasMore)
	assert.Equal(t, "n1", first.NextCursor)

	var ids []string
	for s, err := range hookbase.PaginateCursor(context.Background(), func(ctx context.Context, cursor string) (hookbase.CursorPage[source], error) {
		return hookbase.ListCursor[source](ctx, c, "/api/webhook-applications", 50, cursor)
	}) {
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"app_1", "app_2"}, ids)
}

func TestListOffset_BadEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sources":{"not":"a list"},"pagination":{}}`))
	}))
	defer server.Close()

	c, err := hookbase.New("whr_key", hookbase.WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = hookbase.ListOffset[source](context.Background(), c, "/api/sources", "sources", 1, 20)
	assert.ErrorIs(t, err, apiclient.ErrDeserialization)
}
