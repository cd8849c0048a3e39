package handlers

import (
	"net/http"
	"strconv"

	"github.com/arnavshah/workload-api-go/pkg/models"
	"github.com/gin-gonic/gin"
)

// ValidateInput handles the JSON-based validation request
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.WorkloadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	// Date parameters must parse and the range must not be inverted
	for _, raw := range []string{input.FirstDay, input.LastDay, input.Today} {
		if raw == "" {
			continue
		}
		if _, err := models.ParseDay(raw); err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Invalid date: " + raw})
			return
		}
	}
	if input.FirstDay != "" && input.LastDay != "" {
		first, _ := models.ParseDay(input.FirstDay)
		last, _ := models.ParseDay(input.LastDay)
		if last.Before(first) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "last_day is before first_day"})
			return
		}
	}

	// Check for duplicate IDs
	userIDs := make(map[int]bool)
	for _, u := range input.Users {
		if userIDs[u.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate user ID: " + strconv.Itoa(u.ID)})
			return
		}
		userIDs[u.ID] = true
	}

	groupIDs := make(map[int]bool)
	for _, g := range input.Groups {
		if groupIDs[g.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate group ID: " + strconv.Itoa(g.ID)})
			return
		}
		groupIDs[g.ID] = true
	}

	itemIDs := make(map[int]bool)
	for _, i := range input.Items {
		if itemIDs[i.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate item ID: " + strconv.Itoa(i.ID)})
			return
		}
		itemIDs[i.ID] = true

		for _, raw := range []*string{i.StartDate, i.DueDate} {
			if raw == nil {
				continue
			}
			if _, err := models.ParseDay(*raw); err != nil {
				c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Invalid date: " + *raw})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"user_count":  len(input.Users),
			"group_count": len(input.Groups),
			"item_count":  len(input.Items),
		},
	})
}
