package handler

import (
	"net/http"
	"strconv"
	"time"

	"finance-manager/internal/aggregate"
	"finance-manager/internal/middleware"
	"finance-manager/internal/models"
	"finance-manager/internal/store"
	"finance-manager/internal/util"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves derived aggregates. Nothing here is stored; every
// request re-reads the owner's ledger and re-sums it.
type StatsHandler struct {
	Store store.TransactionStore
}

func NewStatsHandler(s store.TransactionStore) *StatsHandler {
	return &StatsHandler{Store: s}
}

// Summary returns totals by kind plus per-category breakdowns.
func (h *StatsHandler) Summary(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	txs, err := h.Store.ListByOwner(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	totals := aggregate.TotalsByKind(txs)

	util.Success(c, util.Response{
		"totalIncome":  totals.Income,
		"totalExpense": totals.Expense,
		"balance":      totals.Balance,
		"byCategory": gin.H{
			"income":  aggregate.CategoryBreakdown(txs, models.KindIncome),
			"expense": aggregate.CategoryBreakdown(txs, models.KindExpense),
		},
	})
}

type monthBucketResp struct {
	Month   int    `json:"month"`
	Label   string `json:"label"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// Monthly returns the fixed 12-bucket income/expense series for a year.
// Months without transactions come back as zero buckets, so the chart on
// the other end never has to fill gaps.
func (h *StatsHandler) Monthly(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1970 || y > 9999 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
			return
		}
		year = y
	}

	txs, err := h.Store.ListByOwner(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	series := aggregate.MonthlySeries(txs, year)
	buckets := make([]monthBucketResp, 0, len(series))
	for _, b := range series {
		buckets = append(buckets, monthBucketResp{
			Month:   int(b.Month),
			Label:   b.Month.String(),
			Income:  b.Income.StringFixed(2),
			Expense: b.Expense.StringFixed(2),
		})
	}

	util.Success(c, util.Response{
		"year":   year,
		"series": buckets,
	})
}
