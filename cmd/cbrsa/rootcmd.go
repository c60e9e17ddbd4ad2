package main

import (
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa"
	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/logging"
	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/metrics"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	configFile  string
	logLevel    string
	logFormat   string
	dumpMetrics bool

	config   cbrsaConfig
	logger   *zap.Logger
	registry *prometheus.Registry
	recorder *metrics.Recorder
}

func newRootCmd(out io.Writer) *cobra.Command {
	return newApp(out, os.Stderr).rootCmd()
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:                "cbrsa",
		Short:              "textbook RSA key generation and per-symbol encryption",
		Long:               "cbrsa generates textbook RSA key pairs and encrypts text one code point at a time. It is unpadded and for teaching only.",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "load config from the toml file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console or json")
	flags.BoolVar(&a.dumpMetrics, "metrics", false, "print key generation metrics to stderr on exit")

	root.AddCommand(
		a.demoCmd(),
		a.keygenCmd(),
		a.encryptCmd(),
		a.decryptCmd(),
		a.dumpConfigCmd(),
		newVersionCmd(a.out),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	config := getDefaultConfigCopy()
	if a.configFile != "" {
		loaded, err := loadConfig(a.configFile)
		if err != nil {
			return err
		}
		config = loaded
	}
	if a.logLevel != "" {
		config.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		config.Log.Format = a.logFormat
	}
	if err := validateConfig(config); err != nil {
		return err
	}
	a.config = config

	logger, err := newLogger(config.Log, a.errOut)
	if err != nil {
		return err
	}
	a.logger = logger

	a.registry = prometheus.NewRegistry()
	a.recorder = metrics.NewRecorder(a.registry)
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if !a.dumpMetrics || a.registry == nil {
		return nil
	}

	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.errOut, mf); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) keyGenerator() *cbrsa.KeyGenerator {
	cfg := a.config.keyGeneratorConfig()
	cfg.Logger = logging.NewZap(a.logger)
	cfg.Observer = a.recorder
	return cbrsa.NewKeyGenerator(cfg)
}

// bits resolves the prime size: an explicit flag wins over the config file.
func (a *app) bits(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return a.config.Keygen.Bits
}
