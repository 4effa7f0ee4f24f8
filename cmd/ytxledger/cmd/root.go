// Package cmd provides CLI commands for ytxledger.
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/YtxCash/YtxModel/internal/section"
	"github.com/YtxCash/YtxModel/pkg/config"
	"github.com/YtxCash/YtxModel/pkg/db"
	"github.com/YtxCash/YtxModel/pkg/pathutil"
)

var (
	envFile     string
	sectionName string
	debug       bool

	cfg *config.Config
	log = logrus.New()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ytxledger",
	Short: "Manage hierarchical ledger databases",
	Long: `ytxledger maintains the section ledgers of a YTX accounting
workspace: hierarchical account trees stored as closure tables plus
double-entry transaction books.

Example:
  ytxledger init --seed chart.yaml
  ytxledger tree --section finance
  ytxledger check --section finance`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}

		if sectionName != "" {
			cfg.Section = sectionName
		}
		if debug {
			cfg.Log.Level = "debug"
		}

		level, err := logrus.ParseLevel(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
		}
		log.SetLevel(level)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file (default is .env)")
	rootCmd.PersistentFlags().StringVarP(&sectionName, "section", "s", "", "ledger section (finance, product, task, stakeholder, purchase, sales)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(checkCmd)
}

// openDatabase resolves the workspace and opens the ledger database.
func openDatabase() (*db.Connection, error) {
	root, err := pathutil.ExpandHome(cfg.Database.Root)
	if err != nil {
		return nil, err
	}

	resolver := pathutil.New(pathutil.Config{
		LedgerRoot:   root,
		DatabasePath: cfg.Database.Path,
	})
	if err := resolver.EnsureDirs(); err != nil {
		return nil, err
	}

	return db.Open(resolver.DatabasePath())
}

// currentSection parses the configured section.
func currentSection() (section.Section, error) {
	return section.Parse(cfg.Section)
}
