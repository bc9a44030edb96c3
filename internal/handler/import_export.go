package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"finance-manager/internal/middleware"
	"finance-manager/internal/store"
	"finance-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// spreadsheet column order shared by the export files and the import
// template: date, category, type, amount, note.
var sheetHeaders = []string{"Date", "Category", "Type", "Amount", "Note"}

// ImportExportHandler moves the ledger in and out as tabular rows.
type ImportExportHandler struct {
	Store store.TransactionStore
}

func NewImportExportHandler(s store.TransactionStore) *ImportExportHandler {
	return &ImportExportHandler{Store: s}
}

// ExportCSV streams the caller's ledger as a CSV attachment.
func (h *ImportExportHandler) ExportCSV(c *gin.Context) {
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

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so Excel opens the file correctly
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(sheetHeaders)
	for i := range txs {
		t := &txs[i]
		writer.Write([]string{
			t.OccurredOn.Format("2006-01-02"),
			t.Category,
			t.Kind,
			t.Amount.StringFixed(2),
			t.Note,
		})
	}
}

// ExportXLSX streams the caller's ledger as an XLSX attachment.
func (h *ImportExportHandler) ExportXLSX(c *gin.Context) {
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

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range sheetHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range txs {
		t := &txs[idx]
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.OccurredOn.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Kind)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Amount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Note)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 14)
	f.SetColWidth(sheetName, "E", "E", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to export")
	}
}

// ImportXLSX parses an uploaded workbook's first sheet and bulk-inserts the
// rows for the authenticated owner. The whole file imports or nothing does.
func (h *ImportExportHandler) ImportXLSX(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "cannot open file")
		return
	}
	defer file.Close()

	wb, err := excelize.OpenReader(file)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "not a valid xlsx file")
		return
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "workbook has no sheets")
		return
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "cannot read sheet")
		return
	}

	ins, err := rowsToInputs(rows)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	txs, err := h.Store.BulkCreate(user.ID, ins)
	if err != nil {
		storeError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message":  "transactions imported",
		"imported": len(txs),
	})
}

// rowsToInputs maps sheet rows onto transaction inputs. The first row must
// be the header; column positions are resolved by header name so reordered
// templates still import.
func rowsToInputs(rows [][]string) ([]store.TransactionInput, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("no transaction data")
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "category", "type", "amount"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	ins := make([]store.TransactionInput, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		occurredOn, err := util.ParseDate(cell(row, "date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date: %w", i+2, err)
		}
		amount, err := decimal.NewFromString(cell(row, "amount"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount: %w", i+2, err)
		}

		ins = append(ins, store.TransactionInput{
			Category:   cell(row, "category"),
			Kind:       strings.ToLower(cell(row, "type")),
			Amount:     amount,
			Note:       cell(row, "note"),
			OccurredOn: occurredOn,
		})
	}
	return ins, nil
}
