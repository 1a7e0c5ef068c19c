package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <category>",
		Short: "Reload the save whenever the game writes it",
		Long:  "Hold the save open and report each external change until interrupted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEditor(cmd, args[0], func(env *editorEnv) error {
				c := cmd.Context()
				events, err := env.file.Watch(c)
				if err != nil {
					return err
				}
				go env.session.Follow(c, events, env.file)

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "Watching %s (%d %s records)\n", env.file.Path(), len(env.session.Records()), args[0])
				for {
					select {
					case <-c.Done():
						return nil
					case n := <-env.session.Notices():
						fmt.Fprintln(out, renderNotice(n, colorize))
					}
				}
			})
		},
	}
}
