package patient

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const devicesSheet = "Devices"

// DevicesExportHeader is the first row of the device list workbook.
var DevicesExportHeader = []string{
	"Procedure ID",
	"Procedure date",
	"Status",
	"Device code",
	"Brand or model",
	"Manufacturer",
	"Unique device identifier",
	"Reference number",
	"Lot number",
	"Serial number",
	"Expiry date",
	"GMDN code",
	"GMDN description",
}

// WriteDevicesXLSX writes the patient's derived device list as a workbook.
func WriteDevicesXLSX(w io.Writer, p *Patient) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(devicesSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E8EDEE"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]interface{}, len(DevicesExportHeader))
	for i, h := range DevicesExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(devicesSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(DevicesExportHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(devicesSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, d := range p.Devices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			d.ProcedureID, d.ProcedureDate, string(d.Status), d.DeviceCode, d.BrandName, d.Manufacturer,
			d.UDI, d.ReferenceNumber, d.LotNumber, d.SerialNumber, d.ExpiryDate, d.GMDNCode, d.GMDNDescription,
		}
		if err := f.SetSheetRow(devicesSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(devicesSheet, "A", "M", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
