// Package query translates untrusted HTTP query parameters into a bounded
// gorm read query: filter, keyword search, sort, field projection and
// pagination, applied in that order on top of whatever scope constraints the
// caller has already attached.
package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// reservedParams are consumed by the pipeline itself and never treated as
// field constraints.
var reservedParams = map[string]bool{
	"page":    true,
	"limit":   true,
	"sort":    true,
	"fields":  true,
	"keyword": true,
}

// rangeOperators maps the textual suffix of e.g. price[gte]=10 to SQL.
var rangeOperators = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

// Options configures resource-specific behavior of the pipeline.
type Options struct {
	// SearchColumns are matched (case-insensitive, OR-joined) against the
	// keyword parameter. Defaults to ["name"].
	SearchColumns []string
}

// Pagination describes the page window that was applied.
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	Limit         int   `json:"limit"`
	NumberOfPages int64 `json:"numberOfPages"`
}

// Apply builds the final read query from the caller-supplied parameters.
// db must already carry a Model and any mandatory scope constraints; those
// are composed with the user filters by AND and are also honored by the
// total count used for NumberOfPages.
func Apply(db *gorm.DB, params url.Values, opts Options) (*gorm.DB, Pagination, error) {
	tx := applyFilter(db, params)
	tx = applySearch(tx, params.Get("keyword"), opts.SearchColumns)

	// Count under the same composed filter as the page itself, before
	// sort/projection/pagination touch the query.
	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	tx = applySort(tx, params.Get("sort"))
	tx = applyFields(tx, params.Get("fields"))

	page := positiveIntOrDefault(params.Get("page"), DefaultPage)
	limit := positiveIntOrDefault(params.Get("limit"), DefaultLimit)

	pagination := Pagination{
		CurrentPage:   page,
		Limit:         limit,
		NumberOfPages: (total + int64(limit) - 1) / int64(limit),
	}

	tx = tx.Offset((page - 1) * limit).Limit(limit)
	return tx, pagination, nil
}

// applyFilter turns every non-reserved parameter into an equality or range
// constraint. Parameter names arrive in the API's camelCase form and are
// mapped to column names; names that do not form a valid identifier are
// dropped rather than interpolated into SQL.
func applyFilter(tx *gorm.DB, params url.Values) *gorm.DB {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, op := splitRangeSuffix(key)
		if reservedParams[field] {
			continue
		}
		column, ok := ColumnName(field)
		if !ok {
			continue
		}
		value := params.Get(key)
		if op == "" {
			tx = tx.Where(fmt.Sprintf("%s = ?", column), value)
		} else {
			tx = tx.Where(fmt.Sprintf("%s %s ?", column, rangeOperators[op]), value)
		}
	}
	return tx
}

// splitRangeSuffix splits "price[gte]" into ("price", "gte"). Keys without a
// recognized range suffix come back with an empty operator.
func splitRangeSuffix(key string) (string, string) {
	if !strings.HasSuffix(key, "]") {
		return key, ""
	}
	open := strings.Index(key, "[")
	if open <= 0 {
		return key, ""
	}
	op := key[open+1 : len(key)-1]
	if _, ok := rangeOperators[op]; !ok {
		return key, ""
	}
	return key[:open], op
}

func applySearch(tx *gorm.DB, keyword string, columns []string) *gorm.DB {
	if keyword == "" {
		return tx
	}
	if len(columns) == 0 {
		columns = []string{"name"}
	}

	var conditions []string
	var args []interface{}
	for _, col := range columns {
		conditions = append(conditions, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, "%"+strings.ToLower(keyword)+"%")
	}
	return tx.Where("("+strings.Join(conditions, " OR ")+")", args...)
}

func applySort(tx *gorm.DB, sortParam string) *gorm.DB {
	if sortParam == "" {
		return tx.Order("created_at")
	}

	for _, field := range strings.Split(sortParam, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		column, ok := ColumnName(field)
		if !ok {
			continue
		}
		if desc {
			tx = tx.Order(column + " DESC")
		} else {
			tx = tx.Order(column)
		}
	}
	return tx
}

func applyFields(tx *gorm.DB, fieldsParam string) *gorm.DB {
	if fieldsParam == "" {
		return tx
	}

	var columns []string
	for _, field := range strings.Split(fieldsParam, ",") {
		if column, ok := ColumnName(strings.TrimSpace(field)); ok {
			columns = append(columns, column)
		}
	}
	if len(columns) == 0 {
		return tx
	}
	return tx.Select(columns)
}

// ColumnName maps an API field name (camelCase) to its database column
// (snake_case). The second return is false when the name cannot form a safe
// SQL identifier.
func ColumnName(field string) (string, bool) {
	if field == "" {
		return "", false
	}

	var b strings.Builder
	for i, r := range field {
		switch {
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		case r >= 'a' && r <= 'z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				return "", false
			}
			b.WriteRune(r)
		default:
			return "", false
		}
	}
	return b.String(), true
}

// positiveIntOrDefault coerces malformed or non-positive numeric input to the
// default instead of raising an error.
func positiveIntOrDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
