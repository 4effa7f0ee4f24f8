package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YtxCash/YtxModel/internal/event"
	"github.com/YtxCash/YtxModel/internal/ledger"
	"github.com/YtxCash/YtxModel/internal/model"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print a section's hierarchy with leaf balances",
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
		nodes, err := l.BuildTree()
		if err != nil {
			return err
		}

		root := nodes[model.RootID]
		fmt.Println(sec)
		printChildren(l, root, 0)
		return nil
	},
}

func printChildren(l *ledger.Ledger, node *model.Node, depth int) {
	children := append([]*model.Node(nil), node.Children...)
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })

	for _, child := range children {
		indent := strings.Repeat("  ", depth+1)
		if child.Branch {
			fmt.Printf("%s%s/\n", indent, child.Name)
		} else {
			if err := l.LeafTotal(child); err != nil {
				log.WithError(err).WithField("node", child.ID).Warn("balance unavailable")
			}
			fmt.Printf("%s%s  %s\n", indent, child.Name, child.FinalTotal)
		}
		printChildren(l, child, depth+1)
	}
}
