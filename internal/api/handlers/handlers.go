package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"recipehub-backend/domain"
	"recipehub-backend/internal/utils"
)

// currentUserID reads the id set by the auth middleware. Zero means the
// caller is anonymous.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}

// parseID parses the :id path segment, returning notFound when the
// segment is not a positive integer.
func parseID(c *fiber.Ctx, notFound error) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, notFound
	}
	return uint(id), nil
}

func defaultPageSize() int {
	if size, err := strconv.Atoi(utils.GetConfig("PAGE_SIZE")); err == nil && size > 0 {
		return size
	}
	return domain.DefaultPageSize
}

func parsePagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultPageSize())
	if limit < 1 {
		limit = defaultPageSize()
	}
	return page, limit
}

func paginatedResponse(items any, count int64, page, limit int, c *fiber.Ctx) fiber.Map {
	next := ""
	prev := ""
	base := c.BaseURL() + c.Path()
	if int64(page*limit) < count {
		next = base + "?page=" + strconv.Itoa(page+1) + "&limit=" + strconv.Itoa(limit)
	}
	if page > 1 {
		prev = base + "?page=" + strconv.Itoa(page-1) + "&limit=" + strconv.Itoa(limit)
	}
	return fiber.Map{
		"count":    count,
		"next":     next,
		"previous": prev,
		"results":  items,
	}
}
