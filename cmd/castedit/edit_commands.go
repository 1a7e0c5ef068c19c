package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"castedit/internal/mutation"
	"castedit/internal/person"
)

// applyEdit routes one edit through the session and reports the result.
func applyEdit(cmd *cobra.Command, env *editorEnv, category, id string, edit mutation.Edit) error {
	ok, err := env.session.Update(cmd.Context(), person.ID(id), edit)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(category, id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", category, id, edit)
	return nil
}

func newSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <id> <field> <value|null>",
		Short: "Set a numeric field or white tag",
		Long: "Set a numeric field (" + strings.Join(mutation.NumericFields(), ", ") + ")\n" +
			"or a white tag addressed as " + mutation.TagPrefix + "<ID>. The value null clears it.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, id, field := args[0], args[1], args[2]
			var edit mutation.Edit
			if mutation.IsTextField(field) {
				edit = mutation.SetText(field, mutation.ParseText(args[3]))
			} else {
				value, err := mutation.ParseValue(args[3])
				if err != nil {
					return err
				}
				edit = mutation.Set(field, value)
			}
			return ctx.withEditor(cmd, category, func(env *editorEnv) error {
				return applyEdit(cmd, env, category, id, edit)
			})
		},
	}
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <category> <id> firstNameId|lastNameId|customName <value|null>",
		Short: "Change name ids or the custom name",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, id, field := args[0], args[1], args[2]
			if !mutation.IsTextField(field) {
				return fmt.Errorf("%w: %s is not a name field", mutation.ErrUnsupportedField, field)
			}
			edit := mutation.SetText(field, mutation.ParseText(args[3]))
			return ctx.withEditor(cmd, category, func(env *editorEnv) error {
				return applyEdit(cmd, env, category, id, edit)
			})
		},
	}
}

func newTraitCommand(ctx *commandContext) *cobra.Command {
	traitCmd := &cobra.Command{
		Use:   "trait",
		Short: "Add or remove traits",
	}
	traitCmd.AddCommand(labelCommand(ctx, "add", "Add a trait", mutation.AddTraitEdit))
	traitCmd.AddCommand(labelCommand(ctx, "remove", "Remove a trait", mutation.RemoveTraitEdit))
	return traitCmd
}

func newGenreCommand(ctx *commandContext) *cobra.Command {
	genreCmd := &cobra.Command{
		Use:   "genre",
		Short: "Establish or remove genre expertise",
	}
	genreCmd.AddCommand(labelCommand(ctx, "add", "Establish a genre", mutation.AddGenreEdit))
	genreCmd.AddCommand(labelCommand(ctx, "remove", "Remove a genre", mutation.RemoveGenreEdit))
	return genreCmd
}

func labelCommand(ctx *commandContext, use, short string, build func(string) mutation.Edit) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <category> <id> <label>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, id := args[0], args[1]
			edit := build(strings.ToUpper(strings.TrimSpace(args[2])))
			return ctx.withEditor(cmd, category, func(env *editorEnv) error {
				return applyEdit(cmd, env, category, id, edit)
			})
		},
	}
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <category> <group> <field> <value>",
		Short: "Set a numeric field on every record a studio owns",
		Long: "Set a numeric field on every record of <category> owned by <group>.\n" +
			"<group> is a studio id such as PL or GB, or NONE for unemployed records.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, group, field := args[0], args[1], args[2]
			value, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
			if err != nil {
				return fmt.Errorf("parse value %q: %w", args[3], err)
			}
			return ctx.withEditor(cmd, category, func(env *editorEnv) error {
				count, err := env.session.UpdateMany(cmd.Context(), group, field, value)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d record(s)\n", count)
				return nil
			})
		},
	}
}
