package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"castedit/internal/person"
	"castedit/internal/roster"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var exclude []string
	var search string
	var sortField string
	var sortOrder string
	var gender string
	var shady string
	var status []string
	var hireable bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list <category>",
		Short: "List records of a category",
		Long: "List records of a category (" + strings.Join(person.Categories, ", ") + ").\n" +
			"--exclude takes studio ids and the tokens Dead, Locked and Unemployed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := roster.ParseField(sortField)
			if err != nil {
				return err
			}
			order, err := roster.ParseOrder(sortOrder)
			if err != nil {
				return err
			}
			filter := roster.ParseSelection(exclude)
			filter.Search = search
			switch roster.Gender(strings.ToLower(gender)) {
			case roster.GenderAny, roster.GenderMale, roster.GenderFemale:
				filter.Gender = roster.Gender(strings.ToLower(gender))
			default:
				return fmt.Errorf("unknown gender %q (use male or female)", gender)
			}
			switch roster.Shady(strings.ToLower(shady)) {
			case roster.ShadyAny, roster.ShadyYes, roster.ShadyNo:
				filter.Shady = roster.Shady(strings.ToLower(shady))
			default:
				return fmt.Errorf("unknown shady filter %q (use shady or clean)", shady)
			}
			if filter.Status, err = roster.ParseStatus(status); err != nil {
				return err
			}
			filter.Hireable = hireable

			return ctx.withEditor(cmd, args[0], func(env *editorEnv) error {
				c := cmd.Context()
				records, err := env.session.View(c, filter, field, order)
				if err != nil {
					return err
				}
				current, err := env.session.CurrentDate(c)
				if err != nil {
					return err
				}
				var table person.NameTable
				if resolver, err := env.session.Names(c); err == nil {
					table = resolver
				}

				rows := make([]personRow, len(records))
				for i, r := range records {
					rows[i] = newPersonRow(r, table, current)
				}
				if asJSON {
					return writeJSON(cmd, rows)
				}
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No matching records")
					return nil
				}
				cells := make([][]string, len(rows))
				for i, row := range rows {
					cells[i] = row.cells()
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(listHeaders, cells, listAligns))
				fmt.Fprintf(cmd.OutOrStdout(), "%d record(s), %s\n", len(rows), current.Long())
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "Studio ids or flags to hide (e.g. GB,Dead)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive name substring")
	cmd.Flags().StringVar(&sortField, "sort", string(roster.FieldSkill), "Sort field: skill, selfEsteem, age, art, com")
	cmd.Flags().StringVar(&sortOrder, "order", string(roster.Desc), "Sort order: asc or desc")
	cmd.Flags().StringVar(&gender, "gender", "", "Only male or female records")
	cmd.Flags().StringVar(&shady, "shady", "", "Only shady or clean records")
	cmd.Flags().StringSliceVar(&status, "status", nil, "Only records with all of these status labels (e.g. Locked)")
	cmd.Flags().BoolVar(&hireable, "hireable", false, "Only records the player can make an offer to")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <category> <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, id := args[0], args[1]
			return ctx.withEditor(cmd, category, func(env *editorEnv) error {
				c := cmd.Context()
				rec, ok := env.session.Find(person.ID(id))
				if !ok {
					return notFound(category, id)
				}
				current, err := env.session.CurrentDate(c)
				if err != nil {
					return err
				}
				var table person.NameTable
				if resolver, err := env.session.Names(c); err == nil {
					table = resolver
				}
				if asJSON {
					return writeJSON(cmd, newPersonRow(rec, table, current))
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderFields(detailFields(rec, table, current)))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
