package handlers

import (
	"errors"
	"math"
	"strconv"

	"coffeeshop/internal/store"
)

const maxPageLimit = 100

var errInvalidPagination = errors.New("page and limit must be positive integers")

// parsePage reads ?page and ?limit. Paging applies only when both are given;
// otherwise the zero Page selects every order.
func parsePage(pageStr, limitStr string) (store.Page, error) {
	if pageStr == "" && limitStr == "" {
		return store.Page{}, nil
	}

	page := int64(1)
	limit := int64(20)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return store.Page{}, errInvalidPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return store.Page{}, errInvalidPagination
		}
		limit = l
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	// The offset (page-1)*limit must fit in an int64.
	if page-1 > math.MaxInt64/limit {
		return store.Page{}, errInvalidPagination
	}

	return store.Page{Number: page, Limit: limit}, nil
}
