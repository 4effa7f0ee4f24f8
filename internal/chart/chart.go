// Package chart loads YAML chart-of-accounts files and seeds a section
// tree from them.
package chart

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YtxCash/YtxModel/internal/ledger"
	"github.com/YtxCash/YtxModel/internal/model"
	"github.com/YtxCash/YtxModel/internal/section"
)

// Account is one node of the seed tree. An account with children is
// created as a branch regardless of its own flag.
type Account struct {
	Name        string    `yaml:"name"`
	Code        string    `yaml:"code,omitempty"`
	Description string    `yaml:"description,omitempty"`
	Rule        bool      `yaml:"rule,omitempty"`
	Unit        int       `yaml:"unit,omitempty"`
	Children    []Account `yaml:"children,omitempty"`
}

// Chart is a seedable chart of accounts for one section.
type Chart struct {
	Section  string    `yaml:"section"`
	Accounts []Account `yaml:"accounts"`
}

// Load parses a chart file.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file: %w", err)
	}

	var chart Chart
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("failed to parse chart file: %w", err)
	}

	if _, err := section.Parse(chart.Section); err != nil {
		return nil, err
	}

	return &chart, nil
}

// Seed inserts the chart's accounts under the virtual root, depth
// first, and returns the number of nodes created.
func (c *Chart) Seed(l *ledger.Ledger) (int, error) {
	return seedAccounts(l, model.RootID, c.Accounts)
}

func seedAccounts(l *ledger.Ledger, parentID int, accounts []Account) (int, error) {
	created := 0

	for _, account := range accounts {
		node := &model.Node{
			Name:        account.Name,
			Code:        account.Code,
			Description: account.Description,
			Rule:        account.Rule,
			Branch:      len(account.Children) > 0,
			Unit:        account.Unit,
		}

		if err := l.InsertNode(parentID, node); err != nil {
			return created, fmt.Errorf("failed to seed account %q: %w", account.Name, err)
		}
		created++

		n, err := seedAccounts(l, node.ID, account.Children)
		created += n
		if err != nil {
			return created, err
		}
	}

	return created, nil
}
