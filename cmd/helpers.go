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
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/birdwatch/yardlist/internal/ent/overlay"
	"github.com/birdwatch/yardlist/internal/io/csvio"
	"github.com/birdwatch/yardlist/internal/io/pgio"
	yardlist "github.com/birdwatch/yardlist/pkg"
	"github.com/birdwatch/yardlist/pkg/config"
)

// session builds the collaborators shared by most commands. It exits
// on a broken remote configuration; an absent one just disables the
// store.
func session(cmd *cobra.Command) (yardlist.Yardlist, overlay.Store, config.Config) {
	cfg := config.New(flagOpts(cmd)...)

	st, err := pgio.New(cfg)
	if err != nil {
		slog.Error("Cannot create remote store", "error", err)
		os.Exit(1)
	}

	ds := csvio.New(cfg)
	return yardlist.New(cfg, ds, st, nil), st, cfg
}
