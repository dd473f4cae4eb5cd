package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseBoardID reads the :boardId path parameter.
func parseBoardID(c *gin.Context) (int64, error) {
	boardID, err := strconv.ParseInt(c.Param("boardId"), 10, 64)
	if err != nil || boardID < 1 {
		return 0, fmt.Errorf("invalid board id: must be a positive integer")
	}
	return boardID, nil
}

// parseUUIDParam reads a UUID path parameter.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: must be a valid UUID", name)
	}
	return id, nil
}
