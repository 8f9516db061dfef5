package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"homepanel/internal/config"

	"github.com/spf13/cobra"
)

// Commit is stamped at build time with -ldflags "-X main.Commit=...".
var Commit string

var probeTimeout time.Duration

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe every configured device once and print the status report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := buildApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
		defer cancel()

		out := struct {
			Status any `json:"status"`
			Emby   any `json:"emby"`
		}{
			Status: a.services.ClimateStatus(ctx),
			Emby:   a.services.CheckEmby(ctx),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the application version",
	Run: func(cmd *cobra.Command, args []string) {
		version := config.DefaultAppVersion
		if Commit != "" {
			version += " (" + Commit + ")"
		}
		fmt.Println(version)
	},
}

func init() {
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 15*time.Second, "overall probe deadline")
}
