package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YtxCash/YtxModel/internal/chart"
	"github.com/YtxCash/YtxModel/internal/event"
	"github.com/YtxCash/YtxModel/internal/ledger"
	"github.com/YtxCash/YtxModel/internal/section"
	"github.com/YtxCash/YtxModel/pkg/db"
)

var seedFile string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the ledger database, optionally seeding a chart of accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDatabase()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.InitializeAll(conn); err != nil {
			return err
		}
		log.WithField("path", conn.GetPath()).Info("ledger database initialized")

		if seedFile == "" {
			return nil
		}

		c, err := chart.Load(seedFile)
		if err != nil {
			return err
		}

		sec, err := section.Parse(c.Section)
		if err != nil {
			return err
		}

		l := ledger.New(conn, sec, event.NewStation(), log)
		created, err := c.Seed(l)
		if err != nil {
			return err
		}

		fmt.Printf("Seeded %d accounts into %s\n", created, sec)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&seedFile, "seed", "", "chart-of-accounts YAML file to seed")
}
