package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/apptloom-cli/internal/pipeline"
)

var (
	dashOutputPath   string
	dashFormat       string
	dashAppointments string
	dashLookup       string
	dashTweets       string
	dashTextColumn   string
	dashSheet        string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Build every summary view and the text report",
	Long: `Run the configured views (or the built-in dashboard views) over the
appointments table, join regions against the lookup table, and analyse the
tweet table for hashtags, word weights and sentiment.

Inputs come from config (appointments_path, lookup_path, tweets_path) unless
overridden by flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		f := cmd.Flags()
		if f.Changed("appointments") {
			c.AppointmentsPath = dashAppointments
		}
		if f.Changed("lookup") {
			c.LookupPath = dashLookup
		}
		if f.Changed("tweets") {
			c.TweetsPath = dashTweets
		}
		if f.Changed("text-column") {
			c.TextColumn = dashTextColumn
		}
		if f.Changed("sheet") {
			c.Sheet = dashSheet
		}
		format, err := resolveFormat(dashFormat)
		if err != nil {
			return err
		}

		opt, err := pipeline.FromConfig(c)
		if err != nil {
			return err
		}
		p, err := pipeline.New(opt, logger)
		if err != nil {
			return err
		}
		res, err := p.Run()
		if err != nil {
			return err
		}
		for _, n := range res.Notices {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", n)
		}
		return emit(cmd, res, format, dashOutputPath)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVarP(&dashOutputPath, "output", "o", "", "optional path to write the report")
	dashboardCmd.Flags().StringVarP(&dashFormat, "format", "f", "", "output format: markdown|json|yaml (default from config)")
	dashboardCmd.Flags().StringVar(&dashAppointments, "appointments", "", "appointments table (CSV/TSV/XLSX)")
	dashboardCmd.Flags().StringVar(&dashLookup, "lookup", "", "code-to-name lookup table")
	dashboardCmd.Flags().StringVar(&dashTweets, "tweets", "", "tweet table with a free-text column")
	dashboardCmd.Flags().StringVar(&dashTextColumn, "text-column", "", "free-text column of the tweet table")
	dashboardCmd.Flags().StringVar(&dashSheet, "sheet", "", "XLSX: sheet name of the appointments workbook")
}
