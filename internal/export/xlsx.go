// Package export writes filtered views as downloadable workbooks.
package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"fastfood/internal/models"
)

const sheetName = "Restaurants"

var header = []string{
	"id", "name", "address", "city", "postalCode", "province",
	"latitude", "longitude", "categories",
}

// WriteXLSX streams rows as an .xlsx workbook with one header row.
func WriteXLSX(w io.Writer, rows []models.Restaurant) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	for i, r := range rows {
		values := []interface{}{
			r.ID, r.Name, r.Address, r.City, r.PostalCode, r.Province,
			r.Latitude, r.Longitude, r.Categories,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return f.Write(w)
}
