package handler

import (
	"errors"
	"net/http"
	"strconv"

	"finance-manager/internal/middleware"
	"finance-manager/internal/models"
	"finance-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanningHandler serves budgets, savings and goals. These are simple
// owner-scoped rows; the ledger never reads them.
type PlanningHandler struct {
	DB *gorm.DB
}

func NewPlanningHandler(db *gorm.DB) *PlanningHandler {
	return &PlanningHandler{DB: db}
}

func planningID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ---------- budgets ----------

type budgetReq struct {
	Category string           `json:"category" binding:"required,max=100"`
	Limit    *decimal.Decimal `json:"limit" binding:"required"`
}

func (h *PlanningHandler) ListBudgets(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var budgets []models.Budget
	if err := h.DB.Where("user_id = ?", user.ID).Order("id").Find(&budgets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load budgets")
		return
	}
	util.Success(c, util.Response{"budgets": budgets})
}

func (h *PlanningHandler) CreateBudget(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Limit.IsNegative() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "limit must not be negative")
		return
	}

	budget := models.Budget{UserID: user.ID, Category: req.Category, Limit: *req.Limit}
	if err := h.DB.Create(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save budget")
		return
	}
	util.Created(c, util.Response{"budget": budget})
}

func (h *PlanningHandler) UpdateBudget(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}
	id, ok := planningID(c)
	if !ok {
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Limit.IsNegative() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "limit must not be negative")
		return
	}

	var budget models.Budget
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load budget")
		}
		return
	}

	budget.Category = req.Category
	budget.Limit = *req.Limit
	if err := h.DB.Save(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save budget")
		return
	}
	util.Success(c, util.Response{"budget": budget})
}

func (h *PlanningHandler) DeleteBudget(c *gin.Context) {
	h.deleteOwned(c, &models.Budget{}, "budget")
}

// ---------- savings ----------

type savingReq struct {
	Name   string           `json:"name" binding:"required,max=100"`
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

func (h *PlanningHandler) ListSavings(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var savings []models.Saving
	if err := h.DB.Where("user_id = ?", user.ID).Order("id").Find(&savings).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load savings")
		return
	}
	util.Success(c, util.Response{"savings": savings})
}

func (h *PlanningHandler) CreateSaving(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req savingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Amount.IsNegative() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must not be negative")
		return
	}

	saving := models.Saving{UserID: user.ID, Name: req.Name, Amount: *req.Amount}
	if err := h.DB.Create(&saving).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save saving")
		return
	}
	util.Created(c, util.Response{"saving": saving})
}

func (h *PlanningHandler) UpdateSaving(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}
	id, ok := planningID(c)
	if !ok {
		return
	}

	var req savingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Amount.IsNegative() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must not be negative")
		return
	}

	var saving models.Saving
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&saving).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "saving not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load saving")
		}
		return
	}

	saving.Name = req.Name
	saving.Amount = *req.Amount
	if err := h.DB.Save(&saving).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save saving")
		return
	}
	util.Success(c, util.Response{"saving": saving})
}

func (h *PlanningHandler) DeleteSaving(c *gin.Context) {
	h.deleteOwned(c, &models.Saving{}, "saving")
}

// ---------- goals ----------

type goalReq struct {
	Name     string           `json:"name" binding:"required,max=100"`
	Target   *decimal.Decimal `json:"target" binding:"required"`
	Saved    *decimal.Decimal `json:"saved"`
	Deadline string           `json:"deadline"`
}

func (h *PlanningHandler) ListGoals(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var goals []models.Goal
	if err := h.DB.Where("user_id = ?", user.ID).Order("id").Find(&goals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load goals")
		return
	}
	util.Success(c, util.Response{"goals": goals})
}

func (h *PlanningHandler) CreateGoal(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	goal, ok := h.bindGoal(c)
	if !ok {
		return
	}
	goal.UserID = user.ID

	if err := h.DB.Create(goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save goal")
		return
	}
	util.Created(c, util.Response{"goal": goal})
}

func (h *PlanningHandler) UpdateGoal(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}
	id, ok := planningID(c)
	if !ok {
		return
	}

	incoming, ok := h.bindGoal(c)
	if !ok {
		return
	}

	var goal models.Goal
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "goal not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load goal")
		}
		return
	}

	goal.Name = incoming.Name
	goal.Target = incoming.Target
	goal.Saved = incoming.Saved
	goal.Deadline = incoming.Deadline
	if err := h.DB.Save(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save goal")
		return
	}
	util.Success(c, util.Response{"goal": goal})
}

func (h *PlanningHandler) DeleteGoal(c *gin.Context) {
	h.deleteOwned(c, &models.Goal{}, "goal")
}

// bindGoal validates a goal payload and returns it as a model without owner.
func (h *PlanningHandler) bindGoal(c *gin.Context) (*models.Goal, bool) {
	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return nil, false
	}
	if req.Target.IsNegative() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "target must not be negative")
		return nil, false
	}

	saved := decimal.Zero
	if req.Saved != nil {
		if req.Saved.IsNegative() {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "saved must not be negative")
			return nil, false
		}
		saved = *req.Saved
	}

	goal := &models.Goal{Name: req.Name, Target: *req.Target, Saved: saved}
	if req.Deadline != "" {
		deadline, err := util.ParseDate(req.Deadline)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid deadline: "+err.Error())
			return nil, false
		}
		goal.Deadline = &deadline
	}
	return goal, true
}

// deleteOwned removes one owner-scoped row by id, reporting not-found when
// nothing matched.
func (h *PlanningHandler) deleteOwned(c *gin.Context, model interface{}, name string) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}
	id, ok := planningID(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(model)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete "+name)
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, name+" not found")
		return
	}
	util.Success(c, util.Response{"message": name + " deleted"})
}
