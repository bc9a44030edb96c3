package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"finance-manager/internal/middleware"
	"finance-manager/internal/models"
	"finance-manager/internal/store"
	"finance-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler serves the ledger CRUD endpoints. All owner scoping
// comes from the authenticated identity, never from the payload.
type TransactionHandler struct {
	Store store.TransactionStore
}

func NewTransactionHandler(s store.TransactionStore) *TransactionHandler {
	return &TransactionHandler{Store: s}
}

// ---------- request/response shapes ----------

type createTransactionReq struct {
	Category   string           `json:"category"`
	Kind       string           `json:"kind"`
	Amount     *decimal.Decimal `json:"amount"`
	Note       string           `json:"note"`
	OccurredOn string           `json:"occurredOn"`
}

type updateTransactionReq struct {
	Category   *string          `json:"category"`
	Kind       *string          `json:"kind"`
	Amount     *decimal.Decimal `json:"amount"`
	Note       *string          `json:"note"`
	OccurredOn *string          `json:"occurredOn"`
}

// uploadRow mirrors one spreadsheet row: {date, category, type, amount, note}.
type uploadRow struct {
	Date     string           `json:"date"`
	Category string           `json:"category"`
	Type     string           `json:"type"`
	Amount   *decimal.Decimal `json:"amount"`
	Note     string           `json:"note"`
}

type uploadReq struct {
	Transactions []uploadRow `json:"transactions"`
}

type transactionResp struct {
	ID         uint            `json:"id"`
	OwnerID    uint            `json:"ownerId"`
	Category   string          `json:"category"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
	OccurredOn string          `json:"occurredOn"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:         t.ID,
		OwnerID:    t.UserID,
		Category:   t.Category,
		Kind:       t.Kind,
		Amount:     t.Amount,
		Note:       t.Note,
		OccurredOn: t.OccurredOn.Format("2006-01-02"),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// storeError maps store errors onto the response envelope.
func storeError(c *gin.Context, err error) {
	var fieldErr *store.FieldError
	switch {
	case errors.As(err, &fieldErr):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, store.ErrEmptyBatch):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, store.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "storage failure, please retry")
	}
}

// ---------- create ----------

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if req.Amount == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount: amount is required")
		return
	}
	occurredOn, err := util.ParseDate(req.OccurredOn)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid occurredOn: "+err.Error())
		return
	}

	tx, err := h.Store.Create(user.ID, store.TransactionInput{
		Category:   req.Category,
		Kind:       req.Kind,
		Amount:     *req.Amount,
		Note:       req.Note,
		OccurredOn: occurredOn,
	})
	if err != nil {
		storeError(c, err)
		return
	}

	util.Created(c, util.Response{
		"transaction": toTransactionResp(tx),
	})
}

// ---------- list ----------

// List returns the caller's full ledger, newest date first. Admins may pass
// ?ownerId= to read another owner's ledger; for everyone else a mismatched
// ownerId is rejected.
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	ownerID := user.ID
	if ownerStr := c.Query("ownerId"); ownerStr != "" {
		requested, err := strconv.ParseUint(ownerStr, 10, 64)
		if err != nil || requested == 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid ownerId")
			return
		}
		if uint(requested) != user.ID && !user.IsAdmin() {
			util.Error(c, http.StatusForbidden, util.CodeAuth, "cannot read another owner's transactions")
			return
		}
		ownerID = uint(requested)
	}

	txs, err := h.Store.ListByOwner(ownerID)
	if err != nil {
		storeError(c, err)
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}

	util.Success(c, util.Response{
		"transactions": items,
		"total":        len(items),
	})
}

// ---------- update ----------

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	upd := store.TransactionUpdate{
		Category: req.Category,
		Kind:     req.Kind,
		Amount:   req.Amount,
		Note:     req.Note,
	}
	if req.OccurredOn != nil {
		occurredOn, err := util.ParseDate(*req.OccurredOn)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid occurredOn: "+err.Error())
			return
		}
		upd.OccurredOn = &occurredOn
	}

	tx, err := h.Store.Update(uint(id), user.ID, upd)
	if err != nil {
		storeError(c, err)
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(tx),
	})
}

// ---------- delete ----------

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	if err := h.Store.Delete(uint(id), user.ID); err != nil {
		storeError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "transaction deleted",
	})
}

// ---------- bulk upload ----------

// Upload takes rows produced by the spreadsheet import on the client and
// inserts them as one atomic batch for the authenticated owner.
func (h *TransactionHandler) Upload(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req uploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if len(req.Transactions) == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "no transaction data")
		return
	}

	ins := make([]store.TransactionInput, 0, len(req.Transactions))
	for i, row := range req.Transactions {
		if row.Amount == nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
				"row "+strconv.Itoa(i+1)+": invalid amount: amount is required")
			return
		}
		occurredOn, err := util.ParseDate(row.Date)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
				"row "+strconv.Itoa(i+1)+": invalid date: "+err.Error())
			return
		}
		ins = append(ins, store.TransactionInput{
			Category:   row.Category,
			Kind:       row.Type,
			Amount:     *row.Amount,
			Note:       row.Note,
			OccurredOn: occurredOn,
		})
	}

	txs, err := h.Store.BulkCreate(user.ID, ins)
	if err != nil {
		storeError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message":  "transactions uploaded",
		"imported": len(txs),
	})
}
