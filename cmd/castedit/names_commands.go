package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newNamesCommand(ctx *commandContext) *cobra.Command {
	namesCmd := &cobra.Command{
		Use:   "names",
		Short: "Look up entries in the localized name table",
	}
	namesCmd.AddCommand(newNamesSearchCommand(ctx))
	namesCmd.AddCommand(newNamesShowCommand(ctx))
	return namesCmd
}

func newNamesSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find name ids by case-insensitive substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			resolver, err := ctx.nameResolver(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.Editor.NameSearchLimit
			}
			result := resolver.Search(args[0], limit)
			if asJSON {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			if len(result.Matches) == 0 {
				fmt.Fprintln(out, "No matching names")
				return nil
			}
			rows := make([][]string, len(result.Matches))
			for i, m := range result.Matches {
				rows[i] = []string{strconv.Itoa(m.ID), m.Name}
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Name"}, rows, []columnAlignment{alignRight, alignLeft}))
			if result.HasMore {
				fmt.Fprintf(out, "More than %d matches; refine the query\n", limit)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum matches (default editor.name_search_limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newNamesShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the name stored at an id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("name id must be a number: %q", args[0])
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			resolver, err := ctx.nameResolver(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			name, ok := resolver.Resolve(id)
			if !ok {
				return fmt.Errorf("name id %d out of range (table has %d entries)", id, resolver.Len())
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}
