package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/arnavshah/workload-api-go/pkg/database"
	"github.com/arnavshah/workload-api-go/pkg/models"
	"github.com/gin-gonic/gin"
)

var errInvertedInterval = errors.New("interval ends before it starts")

// Admin CRUD for the stored workload configuration. Changes to holidays
// and vacations flush the calendar cache so the next computation sees
// the new working days.

type holidayRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

type vacationRequest struct {
	UserID  int    `json:"user_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Comment string `json:"comment"`
}

type thresholdRequest struct {
	UserID      int     `json:"user_id"`
	Low         float64 `json:"threshold_low"`
	Normal      float64 `json:"threshold_normal"`
	High        float64 `json:"threshold_high"`
	MainGroupID int     `json:"main_group_id"`
}

// ListHolidays returns all stored holidays
func (h *Handler) ListHolidays(c *gin.Context) {
	var holidays []database.Holiday
	h.DB.Order("start_date").Find(&holidays)
	c.JSON(http.StatusOK, gin.H{"holidays": holidays})
}

// CreateHoliday stores a new holiday interval
func (h *Handler) CreateHoliday(c *gin.Context) {
	var req holidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, end, err := parseOrderedDays(req.Start, req.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	holiday := database.Holiday{StartDate: start, EndDate: end, Reason: req.Reason}
	if err := h.DB.Create(&holiday).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create holiday"})
		return
	}

	h.Calendars.Flush()
	c.JSON(http.StatusOK, gin.H{"holiday": holiday})
}

// UpdateHoliday replaces a stored holiday interval
func (h *Handler) UpdateHoliday(c *gin.Context) {
	id := c.Param("id")

	var holiday database.Holiday
	if err := h.DB.First(&holiday, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Holiday not found"})
		return
	}

	var req holidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, end, err := parseOrderedDays(req.Start, req.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	holiday.StartDate = start
	holiday.EndDate = end
	holiday.Reason = req.Reason
	if err := h.DB.Save(&holiday).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update holiday"})
		return
	}

	h.Calendars.Flush()
	c.JSON(http.StatusOK, gin.H{"holiday": holiday})
}

// DeleteHoliday removes a stored holiday interval
func (h *Handler) DeleteHoliday(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.Holiday{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete holiday"})
		return
	}

	h.Calendars.Flush()
	c.JSON(http.StatusOK, gin.H{"message": "Holiday deleted"})
}

// ListVacations returns stored vacations, optionally for one user
func (h *Handler) ListVacations(c *gin.Context) {
	query := h.DB.Order("date_from")
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var vacations []database.Vacation
	query.Find(&vacations)
	c.JSON(http.StatusOK, gin.H{"vacations": vacations})
}

// CreateVacation stores a new vacation interval for a user
func (h *Handler) CreateVacation(c *gin.Context) {
	var req vacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	from, to, err := parseOrderedDays(req.From, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vacation := database.Vacation{UserID: req.UserID, DateFrom: from, DateTo: to, Comment: req.Comment}
	if err := h.DB.Create(&vacation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create vacation"})
		return
	}

	h.Calendars.Flush()
	c.JSON(http.StatusOK, gin.H{"vacation": vacation})
}

// DeleteVacation removes a stored vacation interval
func (h *Handler) DeleteVacation(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.Vacation{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete vacation"})
		return
	}

	h.Calendars.Flush()
	c.JSON(http.StatusOK, gin.H{"message": "Vacation deleted"})
}

// ListThresholds returns all stored per-user thresholds
func (h *Handler) ListThresholds(c *gin.Context) {
	var thresholds []database.UserThreshold
	h.DB.Order("user_id").Find(&thresholds)
	c.JSON(http.StatusOK, gin.H{"thresholds": thresholds})
}

// UpsertThreshold creates or replaces the threshold row of one user
func (h *Handler) UpsertThreshold(c *gin.Context) {
	var req thresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	if req.Low > req.Normal || req.Normal > req.High {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thresholds must be ordered low <= normal <= high"})
		return
	}

	var row database.UserThreshold
	h.DB.Where(database.UserThreshold{UserID: req.UserID}).FirstOrInit(&row)
	row.UserID = req.UserID
	row.ThresholdLow = req.Low
	row.ThresholdNormal = req.Normal
	row.ThresholdHigh = req.High
	row.MainGroupID = req.MainGroupID

	if err := h.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save threshold"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"threshold": row})
}

// DeleteThreshold removes the threshold row of one user
func (h *Handler) DeleteThreshold(c *gin.Context) {
	userID := c.Param("user_id")
	if err := h.DB.Where("user_id = ?", userID).Delete(&database.UserThreshold{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete threshold"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Threshold deleted"})
}

// parseOrderedDays parses two ISO dates and rejects inverted intervals.
func parseOrderedDays(from, to string) (time.Time, time.Time, error) {
	fromDay, err := models.ParseDay(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	toDay, err := models.ParseDay(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if toDay.Before(fromDay) {
		return time.Time{}, time.Time{}, errInvertedInterval
	}
	return fromDay, toDay, nil
}
