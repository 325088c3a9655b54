package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dreitier/treelist/config"
	"github.com/dreitier/treelist/storage"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	log "github.com/sirupsen/logrus"
)

const (
	EnvPrefix     = "TREELIST"
	DefaultOutput = "output.json"
)

// viper keys; flags use the same name with dashes
const (
	keyOutput       = "output"
	keyDepth        = "depth"
	keyUnit         = "unit"
	keyGenerateTree = "generate_tree"
	keyTemplate     = "template"
	keyHtmlOutput   = "html_output"
	keyPrintTree    = "print_tree"
	keyFromReport   = "from_report"
	keyMetricsFile  = "metrics_file"
	keyProvider     = "provider"
	keyConfig       = "config"
	keyDebug        = "debug"
)

var Version = "dev"

// ClientFactory creates the listing client; replaced in tests
type ClientFactory func(cfg *config.Client) (storage.Client, error)

type settings struct {
	output       string
	depth        int
	unit         string
	generateTree bool
	template     string
	htmlOutput   string
	printTree    bool
	fromReport   string
	metricsFile  string
	minSize      uint64
	paths        *config.PathFilter
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// NewRootCommand builds the treelist command. Output meant for the user (summary, preview) goes to the command's
// output writer, progress to logrus.
func NewRootCommand(newClient ClientFactory) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "treelist REMOTE",
		Short: "treelist inventories a remote storage tree.",
		Long: `treelist lists a remote (name:path) recursively through rclone and either reports the summed file
sizes per path prefix of a given depth or renders the whole tree into an HTML template.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.GetBool(keyDebug) {
				log.SetLevel(log.DebugLevel)
			}

			cfg, err := config.Load(v.GetString(keyConfig))
			if err != nil {
				return err
			}

			if !v.GetBool(keyDebug) && cfg.Global().HasLogLevel() {
				log.SetLevel(cfg.Global().LogLevel())
			}

			applyConfigDefaults(v, cfg.Global(), cfg.Client())

			s, err := resolveSettings(v, cfg.Global(), cfg.Paths())
			if err != nil {
				_ = cmd.Usage()
				return err
			}

			var remote string
			if len(args) == 1 {
				remote = args[0]
			}

			if remote == "" && s.fromReport == "" {
				_ = cmd.Usage()
				return errors.New("exactly one REMOTE argument is required")
			}

			r := &runner{
				settings: s,
				out:      cmd.OutOrStdout(),
			}

			if s.fromReport == "" {
				clientConfig := *cfg.Client()
				clientConfig.Provider = strings.ToLower(v.GetString(keyProvider))

				r.client, err = newClient(&clientConfig)
				if err != nil {
					return err
				}
			}

			if s.generateTree || s.fromReport != "" {
				return r.runTree(cmd.Context(), remote)
			}

			return r.runAggregate(cmd.Context(), remote)
		},
	}

	flags := cmd.Flags()
	flags.StringP(flagName(keyOutput), "o", DefaultOutput, "Report file; .yaml/.yml is written as YAML, anything else as JSON")
	flags.IntP(flagName(keyDepth), "d", config.DefaultDepth, "Number of leading path segments forming a group")
	flags.StringP(flagName(keyUnit), "u", config.DefaultUnit, "Size unit of the report: bytes, kb, mb or gb")
	flags.Bool(flagName(keyGenerateTree), false, "Save the raw listing and render it as HTML tree instead of aggregating")
	flags.String(flagName(keyTemplate), config.DefaultTemplate, "HTML template containing {tree_structure}")
	flags.String(flagName(keyHtmlOutput), config.DefaultHtmlOutput, "Rendered HTML file")
	flags.Bool(flagName(keyPrintTree), false, "Print the tree with sizes to stdout")
	flags.String(flagName(keyFromReport), "", "Render a previously saved tree report instead of listing REMOTE")
	flags.String(flagName(keyMetricsFile), "", "Write Prometheus metrics in text format to this file")
	flags.String(flagName(keyProvider), config.ProviderRclone, "Listing provider: rclone, local or s3")
	flags.String(flagName(keyConfig), "", "Configuration file (default: treelist.yaml in ., ~/.treelist, /etc/treelist)")
	flags.Bool(flagName(keyDebug), false, "Enable debug logging")

	for _, key := range []string{
		keyOutput, keyDepth, keyUnit, keyGenerateTree, keyTemplate, keyHtmlOutput, keyPrintTree,
		keyFromReport, keyMetricsFile, keyProvider, keyConfig, keyDebug,
	} {
		_ = v.BindPFlag(key, flags.Lookup(flagName(key)))
	}

	return cmd
}

// applyConfigDefaults makes values of the configuration file take effect unless a flag or environment variable
// overrides them
func applyConfigDefaults(v *viper.Viper, global *config.GlobalConfiguration, client *config.Client) {
	v.SetDefault(keyDepth, global.Depth())
	v.SetDefault(keyUnit, global.Unit())
	v.SetDefault(keyTemplate, global.Template())
	v.SetDefault(keyHtmlOutput, global.HtmlOutput())
	v.SetDefault(keyProvider, client.Provider)
}

// depthOf reads the depth strictly; viper's GetInt would turn an unparsable value into 0
func depthOf(v *viper.Viper) (int, error) {
	value := v.Get(keyDepth)

	if text, ok := value.(string); ok {
		depth, err := strconv.Atoi(strings.TrimSpace(text))

		if err != nil {
			return 0, fmt.Errorf("invalid depth %q: must be a whole number", text)
		}

		return depth, nil
	}

	depth, err := cast.ToIntE(value)

	if err != nil {
		return 0, fmt.Errorf("invalid depth %v: %w", value, err)
	}

	return depth, nil
}

func resolveSettings(v *viper.Viper, global *config.GlobalConfiguration, paths *config.PathFilter) (settings, error) {
	depth, err := depthOf(v)

	if err != nil {
		return settings{}, err
	}

	s := settings{
		output:       v.GetString(keyOutput),
		depth:        depth,
		unit:         strings.ToLower(v.GetString(keyUnit)),
		generateTree: v.GetBool(keyGenerateTree),
		template:     v.GetString(keyTemplate),
		htmlOutput:   v.GetString(keyHtmlOutput),
		printTree:    v.GetBool(keyPrintTree),
		fromReport:   v.GetString(keyFromReport),
		metricsFile:  v.GetString(keyMetricsFile),
		minSize:      global.MinSize(),
		paths:        paths,
	}

	if s.depth < 0 {
		return s, fmt.Errorf("depth must not be negative, got %d", s.depth)
	}

	if s.printTree && !s.generateTree && s.fromReport == "" {
		log.Warnf("--%s has no effect without --%s or --%s", flagName(keyPrintTree), flagName(keyGenerateTree), flagName(keyFromReport))
	}

	return s, nil
}

// Execute runs the command and returns the process exit code
func Execute(ctx context.Context, cmd *cobra.Command) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Errorf("%s", err)
		return 1
	}

	return 0
}
