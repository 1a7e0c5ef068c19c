package main

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"castedit/internal/adjust"
	"castedit/internal/config"
	"castedit/internal/mutation"
	"castedit/internal/person"
)

// Nudged values move on a hundredths grid.
const nudgeScale = 100

func newNudgeCommand(ctx *commandContext) *cobra.Command {
	var hold time.Duration
	var snap bool

	cmd := &cobra.Command{
		Use:   "nudge <category> <id> <field> up|down",
		Short: "Step a value as if its arrow button were pressed",
		Long: "Step a 0..1 field by 0.01. With --hold, keep the button down: after\n" +
			"adjust.hold_delay_ms the value repeats in larger steps (or snaps to\n" +
			"adjust.grid_size when snap_to_grid is set). With --snap, jump once to the\n" +
			"next grid line, or to the next level for a genre.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, id, field := args[0], args[1], args[2]
			var dir adjust.Direction
			switch strings.ToLower(args[3]) {
			case "up", "+":
				dir = adjust.Up
			case "down", "-":
				dir = adjust.Down
			default:
				return fmt.Errorf("unknown direction %q (use up or down)", args[3])
			}

			return ctx.withEditor(cmd, category, func(env *editorEnv) error {
				rec, ok := env.session.Find(person.ID(id))
				if !ok {
					return notFound(category, id)
				}
				current, limit, ok := nudgeValue(rec, field)
				if !ok {
					return fmt.Errorf("%w: %s cannot be nudged", mutation.ErrUnsupportedField, field)
				}

				if snap {
					next, err := snapNudge(cmd, env, rec, field, current, limit, dir)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s %s -> %s\n", category, id, field,
						formatUnit(current), formatUnit(next))
					return nil
				}

				var mu sync.Mutex
				var updateErr error
				onChange := func(v float64) {
					_, err := env.session.Update(cmd.Context(), rec.ID, mutation.SetValue(field, v/nudgeScale))
					if err != nil {
						mu.Lock()
						updateErr = err
						mu.Unlock()
					}
				}
				ctrl := adjust.NewController(math.Round(current*nudgeScale), nudgeSettings(env.cfg, limit), adjust.RealScheduler{}, onChange)
				ctrl.Press(dir)
				if hold > 0 {
					select {
					case <-time.After(hold):
					case <-cmd.Context().Done():
					}
				}
				ctrl.Release()

				mu.Lock()
				defer mu.Unlock()
				if updateErr != nil {
					return updateErr
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s %s -> %s\n", category, id, field,
					formatUnit(current), formatUnit(ctrl.Value()/nudgeScale))
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&hold, "hold", 0, "Keep the button held this long (e.g. 1.5s)")
	cmd.Flags().BoolVar(&snap, "snap", false, "Jump to the next grid line or genre level")
	return cmd
}

// nudgeSettings scales the configured hold behaviour to hundredths.
func nudgeSettings(cfg *config.Config, limit float64) adjust.Settings {
	return adjust.Settings{
		Step:            1,
		AcceleratedStep: float64(cfg.Adjust.GridSize),
		Min:             0,
		Max:             limit * nudgeScale,
		HoldDelay:       cfg.HoldDelay(),
		RepeatInterval:  cfg.RepeatInterval(),
		SnapToGrid:      cfg.Adjust.SnapToGrid,
		GridSize:        float64(cfg.Adjust.GridSize),
	}
}

// nudgeValue returns the current value of field and its upper bound.
func nudgeValue(r person.Record, field string) (float64, float64, bool) {
	if tag, ok := mutation.TagID(field); ok {
		if person.IsGenre(tag) {
			return r.Tags.Read(tag), person.EstablishedThreshold, true
		}
		return r.Tags.Read(tag), 1, true
	}
	switch field {
	case mutation.FieldMood:
		return r.Mood.Float(), 1, true
	case mutation.FieldAttitude:
		return r.Attitude.Float(), 1, true
	case mutation.FieldSelfEsteem:
		return r.SelfEsteem.Float(), 1, true
	case mutation.FieldLimit:
		return r.Limit.Float(), 1, true
	case mutation.FieldReadiness:
		return r.Readiness.Float(), 1, true
	case mutation.FieldSkill:
		return r.Skill(), skillCeiling(r), true
	}
	return 0, 0, false
}

// skillCeiling is the record's limit, or 1 when it has none.
func skillCeiling(r person.Record) float64 {
	if limit, ok := r.Limit.Parse(); ok && limit > 0 {
		return math.Min(limit, 1)
	}
	return 1
}

// snapNudge moves field to the next grid line in dir, or to the next genre
// level for genre tags. Lowering the limit below the current skill pulls the
// skill down with it.
func snapNudge(cmd *cobra.Command, env *editorEnv, rec person.Record, field string, current, limit float64, dir adjust.Direction) (float64, error) {
	var next float64
	tag, isTag := mutation.TagID(field)
	switch {
	case isTag && person.IsGenre(tag) && dir == adjust.Up:
		next = adjust.NextLevel(current, person.GenreThresholds)
	case isTag && person.IsGenre(tag):
		next = adjust.PrevLevel(current, person.GenreThresholds)
	case dir == adjust.Up:
		next = adjust.SnapUp(current, env.cfg.Adjust.GridSize, limit)
	default:
		next = adjust.SnapDown(current, env.cfg.Adjust.GridSize, 0)
	}

	c := cmd.Context()
	if _, err := env.session.Update(c, rec.ID, mutation.SetValue(field, next)); err != nil {
		return 0, err
	}
	if field == mutation.FieldLimit && rec.Skill() > next {
		if _, err := env.session.Update(c, rec.ID, mutation.SetValue(mutation.FieldSkill, next)); err != nil {
			return 0, err
		}
	}
	return next, nil
}
