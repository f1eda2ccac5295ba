/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"

	"github.com/birdwatch/yardlist/internal/ent/sighting"
	"github.com/birdwatch/yardlist/internal/io/csvio"
	"github.com/birdwatch/yardlist/internal/str"
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Shows the species list with your seen/date/notes state",
	Run: func(cmd *cobra.Command, _ []string) {
		y, st, _ := session(cmd)
		defer st.Close()

		rows, _, err := y.Unified(context.Background())
		if err != nil {
			slog.Error("Cannot build unified view", "error", err)
			os.Exit(1)
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			printJSON(rows)
		case "csv":
			if err = csvio.Encode(os.Stdout, rows); err != nil {
				slog.Error("Cannot encode rows", "error", err)
				os.Exit(1)
			}
		default:
			printTable(rows)
		}
	},
}

func printJSON(rows []sighting.Row) {
	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(rows)
	if err != nil {
		slog.Error("Cannot encode rows", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func printTable(rows []sighting.Row) {
	var seen int
	fmt.Printf("%-30s %-5s %-12s %s\n", "Species", "Seen", "First seen", "Notes")
	for i := range rows {
		r := &rows[i]
		if r.Seen == sighting.SeenYes {
			seen++
		}
		fmt.Printf("%-30s %-5s %-12s %s\n",
			str.ShortText(r.Name), r.Seen, r.FirstSeen, str.ShortText(r.Notes))
	}
	fmt.Printf("\n%d of %d species seen\n", seen, len(rows))
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringP("format", "f", "text", "output format: text, csv or json")
}
