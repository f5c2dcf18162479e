package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/config"
	"github.com/rgehrsitz/mawc/internal/tui"
)

func main() {
	cmd := &cobra.Command{
		Use:   "mawc-tui [claim-file]",
		Short: "Interactive Massachusetts Workers' Compensation calculator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settingsPath, _ := cmd.Flags().GetString("settings")
			settings, err := config.LoadSettings(settingsPath, cmd.Flags().Changed("settings"))
			if err != nil {
				return err
			}

			ratesFile := settings.RatesFile
			if cmd.Flags().Changed("rates") {
				ratesFile, _ = cmd.Flags().GetString("rates")
			}
			table, err := config.NewInputParser().LoadRateTable(ratesFile)
			if err != nil {
				return err
			}

			claimPath := ""
			if len(args) == 1 {
				claimPath = args[0]
			}

			model := tui.NewModel(calculation.NewCalculationEngine(), *table, claimPath)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
		SilenceUsage: true,
	}
	cmd.Flags().String("settings", config.DefaultSettingsFile, "TOML settings file supplying defaults")
	cmd.Flags().String("rates", "", "Rate table JSON file (default from settings)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
