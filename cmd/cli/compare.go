package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pantryplan/grocery-service/internal/compare"
)

var (
	compareLat         float64
	compareLng         float64
	compareMaxDistance float64
	comparePrefer      []string
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <item>...",
	Short: "Compare shopping list prices across the store catalog",
	Long: `Compare the given shopping list across every store in the catalog and
print per-item winners, store totals, and the cheapest store overall. With
coordinates, stores are also ranked by combined price and distance.`,
	Example: `  grocery-service compare milk eggs bread
  grocery-service compare "chicken breast" rice --lat 36.1627 --lng -86.7816
  grocery-service compare milk --lat 36.1627 --lng -86.7816 --max-distance 10 --prefer Aldi`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().Float64Var(&compareLat, "lat", 0, "Latitude of the shopper")
	compareCmd.Flags().Float64Var(&compareLng, "lng", 0, "Longitude of the shopper")
	compareCmd.Flags().Float64Var(&compareMaxDistance, "max-distance", 0, "Drop stores farther than this many miles")
	compareCmd.Flags().StringSliceVar(&comparePrefer, "prefer", nil, "Preferred store names, nudges the ranking")
}

func runCompare(cmd *cobra.Command, args []string) error {
	result, err := runComparison(cmd, args)
	if err != nil {
		return err
	}

	printComparison(result)
	return nil
}

// runComparison executes the comparison shared by the compare and export
// commands.
func runComparison(cmd *cobra.Command, items []string) (*compare.Result, error) {
	req := compare.Request{
		Items:           items,
		MaxDistance:     compareMaxDistance,
		PreferredStores: comparePrefer,
	}

	latSet := cmd.Flags().Changed("lat")
	lngSet := cmd.Flags().Changed("lng")
	if latSet != lngSet {
		return nil, fmt.Errorf("--lat and --lng must be given together")
	}
	if latSet {
		req.Location = &compare.Location{Lat: compareLat, Lng: compareLng}
	}

	return newService().Compare(context.Background(), req)
}

func printComparison(result *compare.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ITEM\tBEST STORE\tPRICE\tSAVINGS")
	for _, item := range result.Items {
		if item.BestPrice == nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\n", item.Item)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t$%.2f\n",
			item.Item, item.BestPrice.Store, item.BestPrice.Price, item.Savings)
	}
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if result.LocationAware() {
		fmt.Fprintln(w, "STORE\tTOTAL\tDISTANCE\tSCORE")
		for _, rs := range result.RankedStores {
			marker := ""
			if rs.Recommended {
				marker = " *"
			}
			fmt.Fprintf(w, "%s%s\t$%.2f\t%.1f mi\t%.3f\n", rs.Store, marker, rs.Total, rs.Distance, rs.Score)
		}
	} else {
		fmt.Fprintln(w, "STORE\tTOTAL")
		for store, total := range result.StoreTotals {
			fmt.Fprintf(w, "%s\t$%.2f\n", store, total)
		}
	}
	w.Flush()

	if result.BestStore != nil {
		fmt.Printf("\nCheapest store: %s ($%.2f)\n", result.BestStore.Name, result.BestStore.Total)
	}
}
