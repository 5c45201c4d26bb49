package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/engine/clips"
	"go.trai.ch/strata/internal/ui/style"
)

func (c *CLI) newPrimsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prims",
		Short: "List the composed prims and the clip sets applying to them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := c.open(cmd)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), st.Path())
			for _, prim := range st.Prims() {
				line := prim.String()
				if sets := st.ClipSets(prim); len(sets) > 0 {
					line += " " + p.muted(style.Clip+" "+setNames(sets))
				}
				p.title(line)
			}
			return nil
		},
	}
}

func setNames(sets []*clips.ClipSet) string {
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

func (c *CLI) newClipsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clips <prim>",
		Short: "Describe the value clips applying to a prim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args[0])
			if err != nil {
				return err
			}
			st, err := c.open(cmd)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), st.Path())
			sets := st.ClipSets(path)
			if len(sets) == 0 {
				p.title(path.String() + " " + p.muted("has no clips"))
				return nil
			}
			for _, set := range sets {
				p.title(style.Clip + " " + set.Name)
				p.row("anchor", set.PrimPath.String())
				p.row("clip prim", set.ClipPrimPath.String())
				switch {
				case set.Manifest == nil:
					p.row("manifest", p.muted("none"))
				case set.GeneratedManifest:
					p.row("manifest", p.muted("generated"))
				default:
					p.row("manifest", set.Manifest.AssetPath)
				}
				for _, clip := range set.Clips {
					p.item(clip.AssetPath + " " + p.muted(clipRange(clip.Start, clip.End)))
				}
			}
			return nil
		},
	}
}
