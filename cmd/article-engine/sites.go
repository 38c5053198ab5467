// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the preset sites offered by the source menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tName\tURL")
		for i, p := range cfg.Collection.Presets {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, p.Name, p.URL)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
