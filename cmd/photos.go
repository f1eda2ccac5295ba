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
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/birdwatch/yardlist/internal/io/csvio"
	"github.com/birdwatch/yardlist/internal/io/htmlio"
	"github.com/birdwatch/yardlist/internal/io/kvio"
	"github.com/birdwatch/yardlist/internal/io/pgio"
	yardlist "github.com/birdwatch/yardlist/pkg"
	"github.com/birdwatch/yardlist/pkg/config"
)

// photosCmd represents the photos command
var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Resolves photo pages to direct image links",
	Long: `photos scrapes og:image metadata from each species' photo page and
stores the resolved links in the Image URL column. Lookups are cached
locally, so repeated runs touch the network only for new pages.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := config.New(flagOpts(cmd)...)

		cache, err := kvio.New(cfg.PhotoKVDir)
		if err != nil {
			slog.Error("Cannot create photo cache", "error", err)
			os.Exit(1)
		}
		if err = cache.Open(); err != nil {
			slog.Error("Cannot open photo cache", "error", err)
			os.Exit(1)
		}
		defer cache.Close()

		st, err := pgio.New(cfg)
		if err != nil {
			slog.Error("Cannot create remote store", "error", err)
			os.Exit(1)
		}
		defer st.Close()

		y := yardlist.New(cfg, csvio.New(cfg), st, htmlio.New(cfg, cache))

		ctx := context.Background()
		rows, _, err := y.Unified(ctx)
		if err != nil {
			slog.Error("Cannot build unified view", "error", err)
			os.Exit(1)
		}

		count, err := y.WarmPhotos(ctx, rows)
		if err != nil {
			slog.Error("Cannot fetch photo metadata", "error", err)
			os.Exit(1)
		}

		if err = y.SaveLocal(rows); err != nil {
			slog.Error("Cannot save dataset", "error", err)
			os.Exit(1)
		}
		slog.Info("Resolved image links",
			"resolved", humanize.Comma(int64(count)), "species", len(rows))
	},
}

func init() {
	rootCmd.AddCommand(photosCmd)
}
