package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"loramgr/internal/randomizer"
	"loramgr/internal/snapshot"
	"loramgr/pkg/types"
)

type randomizeOptions struct {
	widget      string
	poolFile    string
	queue       int
	reroll      bool
	rollMode    string
	count       int
	recommended bool
	noReport    bool
}

func newRandomizeCmd(a *app) *cobra.Command {
	var o randomizeOptions
	cmd := &cobra.Command{
		Use:   "randomize",
		Short: "Queue units on a randomizer widget",
		Long: "Loads the widget snapshot, refreshes its pool, queues --queue seeded draws, " +
			"reports each one as executed and saves the snapshot.",
		Example: "  loramgr randomize --widget r1 --pool pool.toml --queue 2 --reroll",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.randomize(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.widget, "widget", "", "Widget id (snapshot key)")
	f.StringVar(&o.poolFile, "pool", "", "Pool filter config file (.yaml|.json|.toml)")
	f.IntVar(&o.queue, "queue", 1, "Number of units to queue")
	f.BoolVar(&o.reroll, "reroll", false, "Reserve a fresh seed before queuing")
	f.StringVar(&o.rollMode, "roll-mode", "", "Roll mode: fixed|always")
	f.IntVar(&o.count, "count", 0, "Draw exactly this many LoRAs (0 keeps the saved count settings)")
	f.BoolVar(&o.recommended, "recommended", false, "Scale each LoRA's recommended strength")
	f.BoolVar(&o.noReport, "no-report", false, "Queue without reporting the units as executed")
	_ = cmd.MarkFlagRequired("widget")
	return cmd
}

func (a *app) randomize(cmd *cobra.Command, o randomizeOptions) error {
	store, err := snapshot.New(a.cfg.StateDir)
	if err != nil {
		return err
	}
	poolCfg, err := readPoolConfig(o.poolFile)
	if err != nil {
		return err
	}

	r := randomizer.New(a.resolver(), randomizer.WithPublisher(a.publisher()), randomizer.WithLogger(a.log))
	var snap types.RandomizerConfig
	found, err := store.Load(o.widget, &snap)
	if err != nil {
		return err
	}
	if found {
		r.Restore(snap)
	}
	if o.rollMode != "" && !r.SetRollMode(types.RollMode(o.rollMode)) {
		return fmt.Errorf("invalid --roll-mode %q", o.rollMode)
	}
	if o.count > 0 || o.recommended {
		s := r.Settings()
		if o.count > 0 {
			s.CountMode = types.CountFixed
			s.CountFixed = o.count
		}
		if o.recommended {
			s.UseRecommendedStrength = true
		}
		r.SetSettings(s)
	}

	resp := r.RefreshList(cmd.Context(), poolCfg)
	a.log.Info().Str("widget", o.widget).Int("total_count", resp.TotalCount).Bool("restored", found).Msg("pool refreshed")
	if o.reroll {
		r.Reroll()
	}

	commits := make([]randomizer.Commit, 0, o.queue)
	for i := 0; i < o.queue; i++ {
		commits = append(commits, r.GenerateNext())
	}
	out := cmd.OutOrStdout()
	for _, cm := range commits {
		fmt.Fprintf(out, "%s\t%d\t%s\n", cm.UnitID, cm.Seed, formatEntries(cm.Loras))
	}
	if !o.noReport {
		for _, cm := range commits {
			r.ReportExecution(cm.Report())
		}
	}
	return store.Save(o.widget, r.BuildConfig())
}

// formatEntries renders a draw as name:model:clip triples.
func formatEntries(entries []types.LoraEntry) string {
	if len(entries) == 0 {
		return "(none)"
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s:%.2f:%.2f", e.FileName, e.Strength, e.ClipStrength)
	}
	return strings.Join(parts, ",")
}
