package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the stage whenever its layer files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.deps.Watcher == nil {
				return zerr.Wrap(zerr.New("no file watcher available"), domain.ErrWatcherStartFailed.Error())
			}
			st, err := c.open(cmd)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), st.Path())
			layers := st.Description().LayerIdentifiers()
			p.title(fmt.Sprintf("watching %d layer(s) of %s", len(layers), p.layer(st.Description().Root)))

			return c.app.Watch(cmd.Context(), st, c.deps.Watcher, func(r app.ReloadReport, err error) {
				if err != nil {
					p.fail("reload failed")
					return
				}
				if len(r.Layers) == 0 {
					return
				}
				names := make([]string, len(r.Layers))
				for i, id := range r.Layers {
					names[i] = p.layer(id)
				}
				p.ok(fmt.Sprintf("reloaded %s %s", strings.Join(names, ", "),
					p.muted(fmt.Sprintf("(%d prims, %d clip sets retained)", len(r.Prims), r.Retained))))
			})
		},
	}
}
