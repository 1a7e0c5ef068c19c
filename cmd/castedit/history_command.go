package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"castedit/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var category string
	var personID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently persisted edits",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openJournal(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("journal is disabled (journal.enabled = false)")
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), journal.Query{Category: category, PersonID: personID, Limit: limit})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No edits recorded")
				return nil
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					e.Category,
					orDash(e.PersonID),
					e.Payload,
					string(e.Outcome),
					strconv.Itoa(e.Affected),
					orDash(e.Error),
				}
			}
			headers := []string{"Time", "Category", "Person", "Edit", "Outcome", "Affected", "Error"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries (default 50)")
	cmd.Flags().StringVar(&category, "category", "", "Only entries for this category")
	cmd.Flags().StringVar(&personID, "person", "", "Only entries for this person id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
