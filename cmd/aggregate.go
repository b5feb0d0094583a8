package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/apptloom-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/apptloom-cli/internal/config"
	"github.com/KaramelBytes/apptloom-cli/internal/dataset"
	"github.com/KaramelBytes/apptloom-cli/internal/parser"
	"github.com/KaramelBytes/apptloom-cli/internal/pipeline"
)

var (
	aggOutputPath string
	aggFormat     string
	aggGroupBy    []string
	aggBucket     string
	aggWhere      []string
	aggTop        int
	aggRank       bool
	aggLookup     string
	aggEnrichOn   string
	aggTitle      string
	aggSource     sourceFlags
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <file>",
	Short: "Group an appointments table and sum appointment counts",
	Long: `Group an appointments table (CSV/TSV/XLSX) by one or more dimensions and
sum count_of_appointments per group.

Dimensions: region (icb_ons_code), month, status, mode, professional_type
(hcp_type), lead_time_bucket, season. Region groupings are joined against
the lookup table when one is available.`,
	Example: `  apptloom aggregate regional.csv --group-by region --top 20
  apptloom aggregate regional.csv --group-by month --bucket month --where status=DNA`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		format, err := resolveFormat(aggFormat)
		if err != nil {
			return err
		}
		src, err := aggSource.options(c.Sheet)
		if err != nil {
			return err
		}

		vc := cfgView(aggTitle, aggGroupBy, aggBucket, aggWhere, aggTop, aggRank, aggEnrichOn)
		view, err := pipeline.ViewFromConfig(vc)
		if err != nil {
			return err
		}
		if view.EnrichOn == "" {
			for _, d := range view.Query.GroupBy {
				if d == analysis.Region {
					view.EnrichOn = analysis.Region
				}
			}
		}

		records, err := dataset.LoadAppointments(args[0], dataset.LoadOptions{Columns: pipeline.Columns(c), Source: src})
		if err != nil {
			return err
		}
		logger.Info("loaded appointments", zap.String("path", args[0]), zap.Int("records", len(records)))

		lookupPath := c.LookupPath
		if cmd.Flags().Changed("lookup") {
			lookupPath = aggLookup
		}
		resolve := analysis.Identity
		if view.EnrichOn != "" {
			lookup, err := dataset.LoadLookup(lookupPath, parser.Options{}, pipeline.LookupColumns(c)...)
			if err != nil {
				return err
			}
			if lookup.Degraded != "" {
				logger.Warn("degraded", zap.String("notice", lookup.Degraded))
			}
			resolve = lookup.Resolve
		}

		t := view.Build(records, resolve)
		if len(t.Rows) == 0 {
			logger.Warn("degraded", zap.String("notice", "no rows after filtering"))
		}
		return emit(cmd, t, format, aggOutputPath)
	},
}

func cfgView(title string, groupBy []string, bucket string, where []string, top int, rank bool, enrichOn string) cfgpkg.ViewConfig {
	if title == "" {
		title = "Appointments by " + strings.Join(groupBy, ", ")
	}
	return cfgpkg.ViewConfig{
		Name:     "aggregate",
		Title:    title,
		GroupBy:  groupBy,
		Bucket:   bucket,
		Where:    where,
		Top:      top,
		Ranked:   rank,
		EnrichOn: enrichOn,
	}
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
	aggregateCmd.Flags().StringVarP(&aggOutputPath, "output", "o", "", "optional path to write the table")
	aggregateCmd.Flags().StringVarP(&aggFormat, "format", "f", "", "output format: markdown|json|yaml (default from config)")
	aggregateCmd.Flags().StringSliceVar(&aggGroupBy, "group-by", []string{"region"}, "comma-separated dimensions to group by (repeatable)")
	aggregateCmd.Flags().StringVar(&aggBucket, "bucket", "", "month bucketing: none|month")
	aggregateCmd.Flags().StringArrayVar(&aggWhere, "where", nil, "equality filter dimension=value (repeatable)")
	aggregateCmd.Flags().IntVar(&aggTop, "top", 0, "keep the N largest groups (0 = all)")
	aggregateCmd.Flags().BoolVar(&aggRank, "rank", false, "order groups by count even without --top")
	aggregateCmd.Flags().StringVar(&aggLookup, "lookup", "", "code-to-name lookup table (overrides config)")
	aggregateCmd.Flags().StringVar(&aggEnrichOn, "enrich-on", "", "dimension to join against the lookup (default region when grouped by region)")
	aggregateCmd.Flags().StringVar(&aggTitle, "title", "", "table title")
	aggSource.register(aggregateCmd)
}
