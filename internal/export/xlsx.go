package export

import (
	"io"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"
	"github.com/talkincode/toughpos/internal/domain"
)

const (
	sheetProducts = "Products"
	sheetSales    = "Sales"
	sheetItems    = "Items"
	firstSheet    = "Sheet1"
)

// cellName zero-based column, one-based row
func cellName(col, row int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(row)
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}) {
	for col, h := range header {
		f.SetCellValue(sheet, cellName(col, 1), h)
	}
	for i, row := range rows {
		for col, v := range row {
			f.SetCellValue(sheet, cellName(col, i+2), v)
		}
	}
}

// ProductsXLSX writes the catalog to a single-sheet workbook
func ProductsXLSX(w io.Writer, products []domain.Product) error {
	f := excelize.NewFile()
	f.SetSheetName(firstSheet, sheetProducts)
	var rows [][]interface{}
	for _, r := range productRows(products) {
		rows = append(rows, r.cells())
	}
	writeSheet(f, sheetProducts, productHeader, rows)
	return errors.Wrap(f.Write(w), "export products xlsx")
}

// SalesXLSX writes a Sales sheet with one row per sale and an Items sheet
// with one row per line
func SalesXLSX(w io.Writer, sales []domain.Sale) error {
	f := excelize.NewFile()
	f.SetSheetName(firstSheet, sheetSales)
	f.NewSheet(sheetItems)

	var saleRows, itemRows [][]interface{}
	for _, s := range sales {
		saleRows = append(saleRows, saleCells(s))
	}
	for _, r := range saleLineRows(sales) {
		itemRows = append(itemRows, r.cells())
	}
	writeSheet(f, sheetSales, saleHeader, saleRows)
	writeSheet(f, sheetItems, saleLineHeader, itemRows)
	f.SetActiveSheet(1)
	return errors.Wrap(f.Write(w), "export sales xlsx")
}
