package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pantryplan/grocery-service/internal/compare"
)

var (
	nearbyLat float64
	nearbyLng float64
)

// nearbyCmd represents the nearby command
var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List catalog stores by distance from a point",
	Example: `  grocery-service nearby --lat 36.1627 --lng -86.7816`,
	RunE:    runNearby,
}

func init() {
	rootCmd.AddCommand(nearbyCmd)

	nearbyCmd.Flags().Float64Var(&nearbyLat, "lat", 0, "Latitude")
	nearbyCmd.Flags().Float64Var(&nearbyLng, "lng", 0, "Longitude")
	nearbyCmd.MarkFlagRequired("lat")
	nearbyCmd.MarkFlagRequired("lng")
}

func runNearby(cmd *cobra.Command, args []string) error {
	stores := newService().Nearby(compare.Location{Lat: nearbyLat, Lng: nearbyLng})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STORE\tDISTANCE\tADDRESS")
	for _, sd := range stores {
		if sd.Address == "Delivery" {
			fmt.Fprintf(w, "%s\tdelivery\t-\n", sd.Store)
			continue
		}
		fmt.Fprintf(w, "%s\t%.1f mi\t%s\n", sd.Store, sd.Distance, sd.Address)
	}
	return w.Flush()
}
