package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/pantryplan/grocery-service/internal/compare"
)

var exportOutput string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <item>...",
	Short: "Export a price comparison to an Excel workbook",
	Long: `Run a comparison like the compare command and write the result to an
.xlsx workbook with one sheet per section: item prices, store totals, and the
ranked store list when coordinates are given.`,
	Example: `  grocery-service export milk eggs bread -o comparison.xlsx
  grocery-service export rice --lat 36.1627 --lng -86.7816 -o nashville.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Float64Var(&compareLat, "lat", 0, "Latitude of the shopper")
	exportCmd.Flags().Float64Var(&compareLng, "lng", 0, "Longitude of the shopper")
	exportCmd.Flags().Float64Var(&compareMaxDistance, "max-distance", 0, "Drop stores farther than this many miles")
	exportCmd.Flags().StringSliceVar(&comparePrefer, "prefer", nil, "Preferred store names, nudges the ranking")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "comparison.xlsx", "Output workbook path")
}

func runExport(cmd *cobra.Command, args []string) error {
	result, err := runComparison(cmd, args)
	if err != nil {
		return err
	}

	f, err := buildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(exportOutput); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Info().Str("path", exportOutput).Int("items", len(result.Items)).Msg("Workbook written")
	fmt.Printf("Wrote %s\n", exportOutput)
	return nil
}

func buildWorkbook(result *compare.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	const itemSheet = "Items"
	if err := f.SetSheetName("Sheet1", itemSheet); err != nil {
		return nil, err
	}

	headers := []any{"Item", "Store", "Price", "Unit", "Estimated", "Best"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(itemSheet, cell, h)
	}

	row := 2
	for _, item := range result.Items {
		for _, q := range item.Stores {
			best := item.BestPrice != nil && item.BestPrice.Store == q.Store
			values := []any{q.Item, q.Store, q.Price, q.Unit, q.IsEstimated, best}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(itemSheet, cell, v)
			}
			row++
		}
	}

	const totalsSheet = "Store Totals"
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return nil, err
	}
	f.SetCellValue(totalsSheet, "A1", "Store")
	f.SetCellValue(totalsSheet, "B1", "Total")
	row = 2
	for store, total := range result.StoreTotals {
		cellA, _ := excelize.CoordinatesToCellName(1, row)
		cellB, _ := excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(totalsSheet, cellA, store)
		f.SetCellValue(totalsSheet, cellB, total)
		row++
	}

	if result.LocationAware() {
		const rankedSheet = "Ranked Stores"
		if _, err := f.NewSheet(rankedSheet); err != nil {
			return nil, err
		}
		rankedHeaders := []any{"Store", "Total", "Distance (mi)", "Score", "Recommended"}
		for col, h := range rankedHeaders {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(rankedSheet, cell, h)
		}
		for i, rs := range result.RankedStores {
			values := []any{rs.Store, rs.Total, rs.Distance, rs.Score, rs.Recommended}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
				f.SetCellValue(rankedSheet, cell, v)
			}
		}
	}

	return f, nil
}
