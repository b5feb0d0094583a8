package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	AppointmentsPath string `mapstructure:"appointments_path" yaml:"appointments_path"`
	LookupPath       string `mapstructure:"lookup_path" yaml:"lookup_path"`
	TweetsPath       string `mapstructure:"tweets_path" yaml:"tweets_path"`
	TextColumn       string `mapstructure:"text_column" yaml:"text_column"`
	// Sheet selects the worksheet of .xlsx inputs; empty means the first.
	Sheet string `mapstructure:"sheet" yaml:"sheet,omitempty"`

	LookupColumns []LookupColumnConfig `mapstructure:"lookup_columns" yaml:"lookup_columns,omitempty" validate:"dive"`
	Columns       ColumnsConfig        `mapstructure:"columns" yaml:"columns,omitempty"`

	// Text report
	HashtagTopN       int      `mapstructure:"hashtag_top_n" yaml:"hashtag_top_n" validate:"gte=0"`
	WordcloudMaxWords int      `mapstructure:"wordcloud_max_words" yaml:"wordcloud_max_words" validate:"gte=0"`
	Stopwords         []string `mapstructure:"stopwords" yaml:"stopwords,omitempty"`
	ReplaceStopwords  bool     `mapstructure:"replace_stopwords" yaml:"replace_stopwords"`
	SentimentLexicon  string   `mapstructure:"sentiment_lexicon" yaml:"sentiment_lexicon,omitempty"`

	OutputFormat string       `mapstructure:"output_format" yaml:"output_format" validate:"oneof=markdown json yaml"`
	Views        []ViewConfig `mapstructure:"views" yaml:"views,omitempty" validate:"dive"`
}

// LookupColumnConfig is one candidate code/name column pair of the lookup table.
type LookupColumnConfig struct {
	Code string `mapstructure:"code" yaml:"code" validate:"required"`
	Name string `mapstructure:"name" yaml:"name" validate:"required"`
}

// ColumnsConfig overrides appointment column names. Empty fields keep the
// built-in names.
type ColumnsConfig struct {
	Region       string `mapstructure:"region" yaml:"region,omitempty"`
	Month        string `mapstructure:"month" yaml:"month,omitempty"`
	Status       string `mapstructure:"status" yaml:"status,omitempty"`
	Mode         string `mapstructure:"mode" yaml:"mode,omitempty"`
	Professional string `mapstructure:"professional" yaml:"professional,omitempty"`
	LeadTime     string `mapstructure:"lead_time" yaml:"lead_time,omitempty"`
	Count        string `mapstructure:"count" yaml:"count,omitempty"`
}

// ViewConfig declares one summary table. When Views is empty the built-in
// dashboard views are used.
type ViewConfig struct {
	Name     string   `mapstructure:"name" yaml:"name" validate:"required"`
	Title    string   `mapstructure:"title" yaml:"title,omitempty"`
	GroupBy  []string `mapstructure:"group_by" yaml:"group_by" validate:"required,min=1"`
	Bucket   string   `mapstructure:"bucket" yaml:"bucket,omitempty" validate:"omitempty,oneof=none day month monthly"`
	Where    []string `mapstructure:"where" yaml:"where,omitempty"`
	Top      int      `mapstructure:"top" yaml:"top,omitempty" validate:"gte=0"`
	Ranked   bool     `mapstructure:"ranked" yaml:"ranked,omitempty"`
	EnrichOn string   `mapstructure:"enrich_on" yaml:"enrich_on,omitempty"`
}

const (
	DefaultHashtagTopN       = 20
	DefaultWordcloudMaxWords = 200
	DefaultTextColumn        = "tweet_full_text"
	DefaultOutputFormat      = "markdown"
)

// Defaults returns the configuration used when no file is present.
func Defaults() *Global {
	return &Global{
		TextColumn:        DefaultTextColumn,
		HashtagTopN:       DefaultHashtagTopN,
		WordcloudMaxWords: DefaultWordcloudMaxWords,
		OutputFormat:      DefaultOutputFormat,
	}
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".apptloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.apptloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("APPTLOOM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("appointments_path", "")
	v.SetDefault("lookup_path", "")
	v.SetDefault("tweets_path", "")
	v.SetDefault("sheet", "")
	v.SetDefault("text_column", DefaultTextColumn)
	v.SetDefault("hashtag_top_n", DefaultHashtagTopN)
	v.SetDefault("wordcloud_max_words", DefaultWordcloudMaxWords)
	v.SetDefault("stopwords", []string{})
	v.SetDefault("replace_stopwords", false)
	v.SetDefault("sentiment_lexicon", "")
	v.SetDefault("output_format", DefaultOutputFormat)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml key names in errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks structural constraints of the configuration.
func (c *Global) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Global.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value())))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s", field, fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s needs at least %s entries", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
