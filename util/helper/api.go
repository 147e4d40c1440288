package helper_util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetPaginationParams(c *gin.Context) (page int, pageSize int, err error) {
	page, err = strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", "25"))
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

// NumOfPages computes the page count for a total at a given page size.
func NumOfPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}
