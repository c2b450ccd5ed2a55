package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loramgr/internal/cycler"
	"loramgr/internal/snapshot"
	"loramgr/pkg/types"
)

type cycleOptions struct {
	widget      string
	poolFile    string
	queue       int
	sortBy      string
	repeat      int
	setIndex    int
	reset       bool
	togglePause bool
	noReport    bool
	strength    float64
}

func newCycleCmd(a *app) *cobra.Command {
	var o cycleOptions
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Queue units on a cycler widget",
		Long: "Loads the widget snapshot, refreshes its pool, queues --queue units, " +
			"reports each one as executed and saves the snapshot.",
		Example: "  loramgr cycle --widget w1 --pool pool.yaml --queue 4",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cycle(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.widget, "widget", "", "Widget id (snapshot key)")
	f.StringVar(&o.poolFile, "pool", "", "Pool filter config file (.yaml|.json|.toml)")
	f.IntVar(&o.queue, "queue", 1, "Number of units to queue")
	f.StringVar(&o.sortBy, "sort-by", "", "Pool order: filename|model_name")
	f.IntVar(&o.repeat, "repeat", 0, "Units per index (0 keeps the saved value)")
	f.IntVar(&o.setIndex, "index", 0, "Jump to this 1-based index before queuing")
	f.BoolVar(&o.reset, "reset", false, "Reset to index 1 before queuing")
	f.BoolVar(&o.togglePause, "toggle-pause", false, "Toggle pause before queuing")
	f.BoolVar(&o.noReport, "no-report", false, "Queue without reporting the units as executed")
	f.Float64Var(&o.strength, "strength", 0, "Model strength for queued units")
	_ = cmd.MarkFlagRequired("widget")
	return cmd
}

func (a *app) cycle(cmd *cobra.Command, o cycleOptions) error {
	store, err := snapshot.New(a.cfg.StateDir)
	if err != nil {
		return err
	}
	poolCfg, err := readPoolConfig(o.poolFile)
	if err != nil {
		return err
	}

	c := cycler.New(a.resolver(), cycler.WithPublisher(a.publisher()), cycler.WithLogger(a.log))
	var snap types.CyclerConfig
	found, err := store.Load(o.widget, &snap)
	if err != nil {
		return err
	}
	if found {
		c.Restore(snap)
	}
	if o.sortBy != "" && !c.SetSortBy(types.SortBy(o.sortBy)) {
		return fmt.Errorf("invalid --sort-by %q", o.sortBy)
	}
	if o.repeat > 0 {
		c.SetRepeatCount(o.repeat)
	}
	if cmd.Flags().Changed("strength") {
		c.SetModelStrength(max(o.strength, 0))
	}

	resp := c.RefreshList(cmd.Context(), poolCfg)
	a.log.Info().Str("widget", o.widget).Int("total_count", resp.TotalCount).Bool("restored", found).Msg("pool refreshed")

	if o.reset {
		c.ResetIndex()
	}
	if o.setIndex > 0 && !c.SetIndex(o.setIndex) {
		a.log.Warn().Int("index", o.setIndex).Int("total_count", c.TotalCount()).Msg("index out of range; ignored")
	}
	if o.togglePause {
		c.TogglePause()
	}

	commits := make([]cycler.Commit, 0, o.queue)
	for i := 0; i < o.queue; i++ {
		commits = append(commits, c.Queue())
	}
	out := cmd.OutOrStdout()
	for _, cm := range commits {
		if cm.Empty() {
			fmt.Fprintf(out, "%s\t-\t(empty pool)\n", cm.UnitID)
			continue
		}
		fmt.Fprintf(out, "%s\t%d/%d\t%s\t%.2f\t%.2f\n",
			cm.UnitID, cm.Index, cm.TotalCount, cm.LoraFilename, cm.ModelStrength, cm.ClipStrength)
	}
	if !o.noReport {
		for _, cm := range commits {
			c.ReportExecution(cm.Report())
		}
	}
	return store.Save(o.widget, c.BuildConfig())
}

