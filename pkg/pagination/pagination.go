// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// (1-based page number, bounded page size, whitelisted "field.direction" sort)
// and how the resulting metadata is delivered in the API response envelope.
//
// It also implements the two-query fetch strategy: LIMIT/OFFSET pagination
// combined with one-to-many join fetches multiplies rows and corrupts page
// boundaries, so list queries are split into an ID-only paginated query
// followed by a single batched hydration query, with the requested order
// restored afterwards.
package pagination

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/taibuivan/hondana/pkg/convert"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 20
	// MaxPageSize is the upper bound for items per page to prevent system abuse.
	MaxPageSize = 1000
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// DefaultSortField is the fallback sort key. It doubles as the secondary
	// sort key on every plan, guaranteeing a total order under ties.
	DefaultSortField = "id"
)

// Direction is a normalized sort direction token.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// Sort is a single resolved ordering criterion.
type Sort struct {
	Field     string
	Direction Direction
}

// Plan is a validated, bounded query plan derived from raw request input.
//
// A Plan is always usable: [BuildQueryPlan] clamps and substitutes instead of
// failing, so handlers never reject a request over pagination parameters.
type Plan struct {
	// PageIndex is the internal zero-based page index.
	PageIndex int
	// PageSize is the resolved page size, within (0, MaxPageSize].
	PageSize int
	// Primary is the resolved primary sort; the secondary sort is always
	// (DefaultSortField, ASC) and is implied, not stored.
	Primary Sort
}

// Offset returns the SQL OFFSET value derived from the plan.
func (p Plan) Offset() int {
	return p.PageIndex * p.PageSize
}

// Limit returns the SQL LIMIT value derived from the plan.
func (p Plan) Limit() int {
	return p.PageSize
}

// BuildQueryPlan converts raw 1-based page/size/sort input into a [Plan].
//
// # Clamping
//
//   - page < 1 is treated as page 1 (internal index max(0, page-1)).
//   - size <= 0 falls back to [DefaultPageSize]; size > [MaxPageSize] is
//     clamped to [MaxPageSize].
//
// # Sort resolution
//
// sortString has the form "field.direction" (e.g. "popularity.desc").
// A malformed string falls back to the default sort entirely. A field that is
// not in allowedFields falls back to [DefaultSortField] while a parseable
// direction is kept; an unparseable direction falls back to ASC
// independently of the field.
//
// This function never fails: bad input always yields a usable plan.
func BuildQueryPlan(page, size int, sortString string, allowedFields []string) Plan {
	if page < 1 {
		page = DefaultPage
	}

	if size <= 0 {
		size = DefaultPageSize
	} else if size > MaxPageSize {
		size = MaxPageSize
	}

	return Plan{
		PageIndex: page - 1,
		PageSize:  size,
		Primary:   parseSort(sortString, allowedFields),
	}
}

// FromRequest builds a [Plan] straight from "page", "size" and "sort" query
// parameters, applying defaultSize when the size parameter is absent.
func FromRequest(r *http.Request, defaultSize int, defaultSort string, allowedFields []string) Plan {
	q := r.URL.Query()

	page := convert.ToIntD(q.Get("page"), DefaultPage)
	size := convert.ToIntD(q.Get("size"), defaultSize)

	sortString := q.Get("sort")
	if sortString == "" {
		sortString = defaultSort
	}

	return BuildQueryPlan(page, size, sortString, allowedFields)
}

// parseSort resolves a "field.direction" string against a whitelist.
func parseSort(sortString string, allowedFields []string) Sort {
	fallback := Sort{Field: DefaultSortField, Direction: ASC}

	sortString = strings.TrimSpace(sortString)
	if sortString == "" {
		return fallback
	}

	parts := strings.Split(sortString, ".")
	if len(parts) != 2 {
		return fallback
	}

	field := strings.TrimSpace(parts[0])
	if !contains(allowedFields, field) {
		// Only the field falls back; the direction is resolved independently.
		field = DefaultSortField
	}

	direction := ASC
	switch strings.ToUpper(strings.TrimSpace(parts[1])) {
	case "ASC":
		direction = ASC
	case "DESC":
		direction = DESC
	}

	return Sort{Field: field, Direction: direction}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// # Sort column mapping

// SortColumns maps public API sort fields to their SQL column expressions.
//
// Each list endpoint declares one of these; its key set doubles as the sort
// whitelist passed to [BuildQueryPlan].
type SortColumns map[string]string

// Fields returns the whitelisted API field names in deterministic order.
func (c SortColumns) Fields() []string {
	fields := make([]string, 0, len(c))
	for field := range c {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// OrderBy renders the plan's ORDER BY clause, always appending the default
// field ascending as a tie-breaking secondary key.
func (c SortColumns) OrderBy(p Plan) string {
	column, ok := c[p.Primary.Field]
	if !ok {
		column = DefaultSortField
	}

	if column == DefaultSortField {
		return fmt.Sprintf("%s %s", column, p.Primary.Direction)
	}
	return fmt.Sprintf("%s %s, %s ASC", column, p.Primary.Direction, DefaultSortField)
}

// # Pages and envelopes

// Page is a raw repository page: one page of items plus total-count metadata.
type Page[T any] struct {
	Items      []T
	TotalItems int64
	Plan       Plan
}

// Envelope is the uniform JSON shape for all paged list responses.
type Envelope[T any] struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int64 `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
	Data        []T   `json:"data"`
}

// ToEnvelope wraps a mapped item list in the standard page envelope, carrying
// over the raw page's plan and totals.
//
// currentPage is the 1-based view of the plan's internal zero-based index.
// The conversion is pure: calling it twice on the same inputs yields
// identical envelopes.
func ToEnvelope[T any, R any](page Page[T], mapped []R) Envelope[R] {
	size := int64(page.Plan.PageSize)

	totalPages := int64(0)
	if size > 0 {
		totalPages = (page.TotalItems + size - 1) / size
	}

	currentPage := page.Plan.PageIndex + 1

	if mapped == nil {
		mapped = []R{}
	}

	return Envelope[R]{
		CurrentPage: currentPage,
		PageSize:    page.Plan.PageSize,
		TotalPages:  totalPages,
		TotalItems:  page.TotalItems,
		HasNext:     int64(currentPage) < totalPages,
		HasPrevious: currentPage > 1,
		Data:        mapped,
	}
}

// # Two-query strategy

// ApplyTwoQueryStrategy reorders a batched detail fetch to the initial page's
// ID order.
//
// # Flow
//
//  1. An empty initial page returns immediately with its metadata intact;
//     the detail fetcher is never called.
//  2. Otherwise the ordered ID list is extracted from the initial page and
//     the detail fetcher is invoked once with the whole batch — one index
//     query plus one hydration query instead of one query per association.
//  3. The fetched records are sorted back into the initial ID order.
//
// # Tolerance
//
// A record whose ID appears in the initial page but not in the detail fetch
// (e.g. deleted between the two queries) is dropped silently, not treated as
// an error. TotalItems still reflects the first query's count; this is a
// deliberate eventual-consistency trade-off for read paths.
func ApplyTwoQueryStrategy[T any, ID comparable](
	ctx context.Context,
	initial Page[T],
	fetchDetails func(ctx context.Context, ids []ID) ([]T, error),
	idOf func(T) ID,
) (Page[T], error) {
	if len(initial.Items) == 0 {
		return Page[T]{Items: []T{}, TotalItems: initial.TotalItems, Plan: initial.Plan}, nil
	}

	ids := make([]ID, len(initial.Items))
	for i, item := range initial.Items {
		ids[i] = idOf(item)
	}

	detailed, err := fetchDetails(ctx, ids)
	if err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Items:      restoreOrder(ids, detailed, idOf),
		TotalItems: initial.TotalItems,
		Plan:       initial.Plan,
	}, nil
}

// restoreOrder sorts list to match the position of each ID in ids, dropping
// records whose ID is absent from ids.
func restoreOrder[T any, ID comparable](ids []ID, list []T, idOf func(T) ID) []T {
	if len(ids) == 0 || len(list) == 0 {
		return []T{}
	}

	position := make(map[ID]int, len(ids))
	for i, id := range ids {
		position[id] = i
	}

	ordered := make([]T, len(ids))
	found := make([]bool, len(ids))
	for _, item := range list {
		if pos, ok := position[idOf(item)]; ok {
			ordered[pos] = item
			found[pos] = true
		}
	}

	result := make([]T, 0, len(ids))
	for i, ok := range found {
		if ok {
			result = append(result, ordered[i])
		}
	}
	return result
}
