package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// getKeys devolve as chaves de um mapa de campos ordenáveis, para expor
// no meta da resposta
func getKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// parsePagination lê page/limit da query com os defaults do projeto
func parsePagination(c *fiber.Ctx, defaultLimit int) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// parseOrderBy valida sortBy/sortDirection contra os campos permitidos e
// monta a cláusula de ordenação
func parseOrderBy(c *fiber.Ctx, validSortFields map[string]string, defaultOrder string) (string, string, string) {
	sortBy := c.Query("sortBy", "")
	sortDirection := c.Query("sortDirection", "desc")

	// Validate sort direction
	if sortDirection != "asc" && sortDirection != "desc" {
		sortDirection = "desc"
	}

	orderBy := defaultOrder
	if field, ok := validSortFields[sortBy]; ok {
		orderBy = field + " " + sortDirection
	}
	return orderBy, sortBy, sortDirection
}
