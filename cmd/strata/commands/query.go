package commands

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/engine/resolve"
)

func queryTitle(path domain.Path, t domain.TimeCode) string {
	if t.IsDefault() {
		return path.String()
	}
	return path.String() + " @ " + t.String()
}

func (c *CLI) newValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value <path>",
		Short: "Resolve the value of an attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args[0])
			if err != nil {
				return err
			}
			t, err := timeFlag(cmd)
			if err != nil {
				return err
			}
			st, err := c.open(cmd)
			if err != nil {
				return err
			}

			res, err := st.Value(cmd.Context(), path, t)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), st.Path())
			p.title(queryTitle(path, t))
			if res.Found {
				p.row("value", res.Value.String())
			} else {
				p.row("value", p.muted("none"))
			}
			p.row("source", res.Info.Source.String())
			return nil
		},
	}
	addTimeFlag(cmd)
	return cmd
}

func (c *CLI) newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Show which opinion supplies the value of an attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args[0])
			if err != nil {
				return err
			}
			t, err := timeFlag(cmd)
			if err != nil {
				return err
			}
			st, err := c.open(cmd)
			if err != nil {
				return err
			}

			info, err := st.Info(cmd.Context(), path, t)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), st.Path())
			p.title(queryTitle(path, t))
			printInfo(p, info, t)
			return nil
		},
	}
	addTimeFlag(cmd)
	return cmd
}

func printInfo(p *printer, info *resolve.Info, t domain.TimeCode) {
	p.row("source", info.Source.String())
	if info.ValueIsBlocked {
		p.row("blocked", "yes")
	}
	if layer, ok := info.Layer(); ok && info.Source != domain.SourceFallback {
		p.row("layer", p.layer(layer.Identifier()))
	}
	if !info.PrimPathInLayerStack.IsEmpty() {
		p.row("prim", info.PrimPathInLayerStack.String())
	}
	if offset := info.LayerToStageOffset(); !offset.IsIdentity() {
		p.row("offset", formatFloat(offset.Offset)+" scale "+formatFloat(offset.Scale))
	}
	if info.ClipSet != nil {
		p.row("clip set", info.ClipSet.Name)
	}
	if info.Clip != nil {
		p.row("clip", info.Clip.AssetPath+" "+p.muted(clipRange(info.Clip.Start, info.Clip.End)))
	}
	if !t.IsDefault() && (info.Source == domain.SourceTimeSamples || info.Source == domain.SourceValueClips) {
		p.row("bracket", formatFloat(info.Lower)+" .. "+formatFloat(info.Upper))
	}
}

func clipRange(start, end float64) string {
	bound := func(f float64) string {
		switch {
		case f <= -math.MaxFloat64:
			return "-inf"
		case f >= math.MaxFloat64:
			return "inf"
		default:
			return formatFloat(f)
		}
	}
	return "[" + bound(start) + ", " + bound(end) + ")"
}

func (c *CLI) newSamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples <path>",
		Short: "List the time samples of an attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args[0])
			if err != nil {
				return err
			}
			t, err := timeFlag(cmd)
			if err != nil {
				return err
			}
			from, _ := cmd.Flags().GetFloat64("from")
			to, _ := cmd.Flags().GetFloat64("to")
			st, err := c.open(cmd)
			if err != nil {
				return err
			}

			res, err := st.Samples(cmd.Context(), path, domain.ClosedInterval(from, to), t)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), st.Path())
			p.title(queryTitle(path, t))
			p.row("times", formatTimes(res.Times))
			p.row("varying", strconv.FormatBool(res.Varying))
			if b := res.Bracket; b != nil {
				if b.HasSamples {
					p.row("bracket", formatFloat(b.Lower)+" .. "+formatFloat(b.Upper))
				} else {
					p.row("bracket", p.muted("none"))
				}
			}
			return nil
		},
	}
	addTimeFlag(cmd)
	cmd.Flags().Float64("from", math.Inf(-1), "Start of the sample interval")
	cmd.Flags().Float64("to", math.Inf(1), "End of the sample interval")
	return cmd
}

func (c *CLI) newMetadataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata <path> <field>",
		Short: "Compose a metadata field of a prim or property",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args[0])
			if err != nil {
				return err
			}
			field := args[1]
			key, _ := cmd.Flags().GetString("key")
			listOp, _ := cmd.Flags().GetBool("listop")
			st, err := c.open(cmd)
			if err != nil {
				return err
			}

			var (
				value string
				found bool
			)
			if listOp {
				var items []string
				items, found, err = st.ListOp(cmd.Context(), path, field)
				value = "[" + strings.Join(items, ", ") + "]"
			} else {
				var v domain.Value
				v, found, err = st.Metadata(cmd.Context(), path, field, key)
				value = v.String()
			}
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), st.Path())
			title := path.String() + " " + field
			if key != "" {
				title += ":" + key
			}
			p.title(title)
			if !found {
				value = p.muted("none")
			}
			p.row("value", value)
			return nil
		},
	}
	cmd.Flags().StringP("key", "k", "", "Colon-delimited key path inside a dictionary field")
	cmd.Flags().Bool("listop", false, "Compose the field as a list op")
	return cmd
}

func (c *CLI) newSpecifierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "specifier <prim>",
		Short: "Compose the specifier of a prim",
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

			spec, found, err := st.Specifier(cmd.Context(), path)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), st.Path())
			p.title(path.String())
			value := spec.String()
			if !found {
				value = p.muted("none")
			}
			p.row("specifier", value)
			return nil
		},
	}
}

func (c *CLI) newStackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack <path>",
		Short: "List the property specs contributing to an attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args[0])
			if err != nil {
				return err
			}
			t, err := timeFlag(cmd)
			if err != nil {
				return err
			}
			st, err := c.open(cmd)
			if err != nil {
				return err
			}

			specs, err := st.PropertyStack(cmd.Context(), path, t)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), st.Path())
			p.title(queryTitle(path, t))
			if len(specs) == 0 {
				p.item(p.muted("no specs"))
			}
			for _, spec := range specs {
				p.item(p.layer(spec.Layer.Identifier()) + " " + p.muted(spec.Path.String()))
			}
			return nil
		},
	}
	addTimeFlag(cmd)
	return cmd
}
