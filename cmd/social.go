package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/apptloom-cli/internal/dataset"
	"github.com/KaramelBytes/apptloom-cli/internal/pipeline"
	"github.com/KaramelBytes/apptloom-cli/internal/textstats"
)

var (
	socOutputPath  string
	socFormat      string
	socTextColumn  string
	socTop         int
	socMaxWords    int
	socStopwords   []string
	socReplaceStop bool
	socLexicon     string
	socSource      sourceFlags
)

var socialCmd = &cobra.Command{
	Use:   "social <file>",
	Short: "Hashtag, word and sentiment tables for a text table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		f := cmd.Flags()
		if f.Changed("text-column") {
			c.TextColumn = socTextColumn
		}
		if f.Changed("top") {
			c.HashtagTopN = socTop
		}
		if f.Changed("max-words") {
			c.WordcloudMaxWords = socMaxWords
		}
		if len(socStopwords) > 0 {
			c.Stopwords = append(append([]string(nil), c.Stopwords...), socStopwords...)
		}
		if f.Changed("replace-stopwords") {
			c.ReplaceStopwords = socReplaceStop
		}
		if f.Changed("lexicon") {
			c.SentimentLexicon = socLexicon
		}
		format, err := resolveFormat(socFormat)
		if err != nil {
			return err
		}
		src, err := socSource.options("")
		if err != nil {
			return err
		}
		opt, err := pipeline.TextOptions(c)
		if err != nil {
			return err
		}

		texts, err := dataset.LoadTexts(args[0], c.TextColumn, src)
		if err != nil {
			return err
		}
		if texts.Notice != "" {
			logger.Warn("degraded", zap.String("notice", texts.Notice))
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", texts.Notice)
		}
		rep := textstats.Analyze(texts.Texts, opt)
		logger.Info("analysed texts", zap.String("path", args[0]), zap.Int("texts", rep.Texts))
		return emit(cmd, rep, format, socOutputPath)
	},
}

func init() {
	rootCmd.AddCommand(socialCmd)
	socialCmd.Flags().StringVarP(&socOutputPath, "output", "o", "", "optional path to write the report")
	socialCmd.Flags().StringVarP(&socFormat, "format", "f", "", "output format: markdown|json|yaml (default from config)")
	socialCmd.Flags().StringVar(&socTextColumn, "text-column", "", "free-text column (default tweet_full_text)")
	socialCmd.Flags().IntVar(&socTop, "top", 0, "number of hashtags to keep (default from config, 0 = all)")
	socialCmd.Flags().IntVar(&socMaxWords, "max-words", 0, "number of words in the weight table (default from config, 0 = all)")
	socialCmd.Flags().StringSliceVar(&socStopwords, "stopword", nil, "extra stopword (repeatable)")
	socialCmd.Flags().BoolVar(&socReplaceStop, "replace-stopwords", false, "use only configured/flag stopwords")
	socialCmd.Flags().StringVar(&socLexicon, "lexicon", "", "YAML sentiment lexicon (word: polarity)")
	socSource.register(socialCmd)
}
