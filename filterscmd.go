package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janpfeifer/retouch/filters"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the available color filters",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(filters.OriginalLabel, "(no filter)")
		for _, entry := range filters.Catalog() {
			fmt.Println(entry.Label)
		}
	},
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}
