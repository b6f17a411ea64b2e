package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tovoson/multiStats/pkg/navigation"
)

type MenuHandler struct {
	items []navigation.Item
}

func NewMenuHandler(items []navigation.Item) (*MenuHandler, error) {
	if err := navigation.ValidateMenu(items); err != nil {
		return nil, err
	}
	copied := make([]navigation.Item, len(items))
	copy(copied, items)
	return &MenuHandler{items: copied}, nil
}

func (h *MenuHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"menu_items": h.items})
}
