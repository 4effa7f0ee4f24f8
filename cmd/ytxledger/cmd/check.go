package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YtxCash/YtxModel/internal/event"
	"github.com/YtxCash/YtxModel/internal/ledger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit a section's closure table for structural damage",
	RunE: func(cmd *cobra.Command, args []string) error {
		sec, err := currentSection()
		if err != nil {
			return err
		}

		conn, err := openDatabase()
		if err != nil {
			return err
		}
		defer conn.Close()

		l := ledger.New(conn, sec, event.NewStation(), log)
		issues, err := l.CheckIntegrity()
		if err != nil {
			return err
		}

		if len(issues) == 0 {
			fmt.Printf("%s: hierarchy consistent\n", sec)
			return nil
		}

		for _, issue := range issues {
			fmt.Println(issue)
		}
		return fmt.Errorf("%s: %d integrity issues", sec, len(issues))
	},
}
