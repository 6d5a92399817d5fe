package equipment

import (
	"fmt"

	"github.com/crucial707/equipment-registry/internal/models"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Equipamentos"

var exportHeaders = []interface{}{
	"ID", "Nº do bem", "Categoria", "Objeto", "Modelo", "Data aquisição", "Nota fiscal", "Valor (R$)",
	"Estado de conservação", "Setor alocado", "Responsável / operador", "Data entrega", "Manutenção dada",
	"Serviço realizado",
}

// writeWorkbook saves list to path as a single-sheet spreadsheet.
func writeWorkbook(path string, list []models.Equipment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "N1", bold); err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}

	for i, e := range list {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{
			e.ID, e.AssetTag, string(e.Category), e.Object, e.Model, e.AcquiredOnString(), e.InvoiceNumber,
			e.Value, string(e.Condition), e.Sector, e.Operator, e.DeliveredOnString(), e.Maintenance,
			e.ServicePerformed,
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
		valueCell, err := excelize.CoordinatesToCellName(8, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(exportSheet, valueCell, valueCell, money); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "N", 20); err != nil {
		return err
	}
	if len(list) > 0 {
		if err := f.AutoFilter(exportSheet, fmt.Sprintf("A1:N%d", len(list)+1), nil); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// ==========================
// EXPORT
// ==========================
func exportCmd(open Opener) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "export FILE.xlsx",
		Short: "Write equipment records to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), open, func(svc Service) error {
				list, err := svc.List(cmd.Context(), search)
				if err != nil {
					return err
				}
				if err := writeWorkbook(args[0], list); err != nil {
					return fmt.Errorf("write %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d record(s) to %s\n", len(list), args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only export records matching this term")
	return cmd
}
