package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/John-Robertt/subhub-go/internal/store"
	"github.com/John-Robertt/subhub-go/internal/sub"
)

var listConfig string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscriptions and their nodes",
	Long: `Load --config and print every subscription with its nodes in serving
order. Disabled nodes are marked with "-".`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := store.LoadFile(listConfig)
		if err != nil {
			return err
		}
		return listSubscriptions(cmd.OutOrStdout(), st)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listConfig, "config", "c", "subscriptions.yaml", "订阅配置文件（YAML）")
	rootCmd.AddCommand(listCmd)
}

func listSubscriptions(w io.Writer, st *store.Store) error {
	for _, path := range st.Paths() {
		s, err := st.Get(path)
		if err != nil {
			return err
		}
		enabled := 0
		for _, n := range s.Nodes {
			if n.Enabled {
				enabled++
			}
		}
		fmt.Fprintf(w, "%s\t%s\tnodes=%d enabled=%d\n", s.Path, s.Name, len(s.Nodes), enabled)
		for _, n := range s.Nodes {
			mark := "+"
			if !n.Enabled {
				mark = "-"
			}
			fmt.Fprintf(w, "  %s %d\t%s\t%s\n", mark, n.Order, sub.Detect(n.Link), n.Name)
		}
	}
	return nil
}
