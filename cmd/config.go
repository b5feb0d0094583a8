package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/apptloom-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set apptloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "appointments_path: %s\n", cfg.AppointmentsPath)
		fmt.Fprintf(out, "lookup_path: %s\n", cfg.LookupPath)
		fmt.Fprintf(out, "tweets_path: %s\n", cfg.TweetsPath)
		fmt.Fprintf(out, "text_column: %s\n", cfg.TextColumn)
		if cfg.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", cfg.Sheet)
		}
		fmt.Fprintf(out, "hashtag_top_n: %d\n", cfg.HashtagTopN)
		fmt.Fprintf(out, "wordcloud_max_words: %d\n", cfg.WordcloudMaxWords)
		if len(cfg.Stopwords) > 0 {
			fmt.Fprintf(out, "stopwords: %s\n", strings.Join(cfg.Stopwords, ","))
		}
		fmt.Fprintf(out, "replace_stopwords: %t\n", cfg.ReplaceStopwords)
		if cfg.SentimentLexicon != "" {
			fmt.Fprintf(out, "sentiment_lexicon: %s\n", cfg.SentimentLexicon)
		}
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		if len(cfg.Views) > 0 {
			names := make([]string, len(cfg.Views))
			for i, v := range cfg.Views {
				names[i] = v.Name
			}
			fmt.Fprintf(out, "views: %s\n", strings.Join(names, ","))
		} else {
			fmt.Fprintln(out, "views: (built-in dashboard)")
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		switch key {
		case "appointments_path":
			next.AppointmentsPath = val
		case "lookup_path":
			next.LookupPath = val
		case "tweets_path":
			next.TweetsPath = val
		case "text_column":
			next.TextColumn = val
		case "sheet":
			next.Sheet = val
		case "hashtag_top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for hashtag_top_n: %v", val)
			}
			next.HashtagTopN = i
		case "wordcloud_max_words":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for wordcloud_max_words: %v", val)
			}
			next.WordcloudMaxWords = i
		case "stopwords":
			next.Stopwords = nil
			for _, w := range strings.Split(val, ",") {
				if w = strings.TrimSpace(w); w != "" {
					next.Stopwords = append(next.Stopwords, w)
				}
			}
		case "replace_stopwords":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for replace_stopwords: %w", err)
			}
			next.ReplaceStopwords = b
		case "sentiment_lexicon":
			next.SentimentLexicon = val
		case "output_format":
			next.OutputFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
