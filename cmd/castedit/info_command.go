package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"castedit/internal/person"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Summarize the open save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEditor(cmd, "", func(env *editorEnv) error {
				info, err := env.file.Info(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, info)
				}
				fields := [][2]string{
					{"Save", env.file.Path()},
					{"Studio", info.StudioName},
					{"Date", info.CurrentDate},
					{"Budget", strconv.FormatInt(info.Budget, 10)},
					{"Cash", strconv.FormatInt(info.Cash, 10)},
					{"Reputation", formatUnit(info.Reputation)},
					{"Influence", strconv.FormatInt(info.Influence, 10)},
					{"Movies", strconv.Itoa(info.Movies)},
				}
				for _, category := range person.Categories {
					if n, ok := info.Counts[category]; ok {
						fields = append(fields, [2]string{category, strconv.Itoa(n)})
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderFields(fields))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
