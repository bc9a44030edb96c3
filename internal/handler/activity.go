package handler

import (
	"net/http"
	"strconv"

	"finance-manager/internal/middleware"
	"finance-manager/internal/models"
	"finance-manager/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListActivity returns the caller's recent API activity, newest first.
func ListActivity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
			return
		}

		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			n, err := strconv.Atoi(limitStr)
			if err != nil || n <= 0 || n > 500 {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid limit")
				return
			}
			limit = n
		}

		var entries []models.AuditLog
		if err := db.Where("user_id = ?", user.ID).
			Order("id DESC").
			Limit(limit).
			Find(&entries).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load activity")
			return
		}

		util.Success(c, util.Response{
			"activity": entries,
		})
	}
}
