package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/feather-lang/slot"
	"github.com/feather-lang/slot/internal/tree"
	"github.com/feather-lang/slot/internal/treefile"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	Full  bool
	Width int
}

func newRenderCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print a tree file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := treefile.Open(args[0])
			if err != nil {
				return err
			}
			opts := renderOptions{Full: a.cfg.Render.Full, Width: a.cfg.Render.Width}
			if a.cfg.Render.Markdown {
				return renderMarkdown(cmd.OutOrStdout(), root, opts)
			}
			return renderTree(cmd.OutOrStdout(), root, opts)
		},
	}
	cmd.Flags().Bool("full", false, "describe each slot with its type and back-reference")
	cmd.Flags().Bool("markdown", false, "render as formatted markdown")
	cmd.Flags().Int("width", 0, "word wrap width for markdown output")
	_ = a.v.BindPFlag("render.full", cmd.Flags().Lookup("full"))
	_ = a.v.BindPFlag("render.markdown", cmd.Flags().Lookup("markdown"))
	_ = a.v.BindPFlag("render.width", cmd.Flags().Lookup("width"))
	return cmd
}

// slotText is a slot's String, or FullString when full is set.
func slotText(s *tree.Slot, full bool) string {
	if full {
		return slot.ToFullText(s)
	}
	return slot.ToText(s)
}

// attrText lists a slot's attributes as key=value pairs in name order.
func attrText(s *tree.Slot, style func(string) string) string {
	names := s.AttrNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		b, err := s.Lookup(name)
		if err != nil {
			continue
		}
		parts = append(parts, style(name)+"="+b.String())
	}
	return strings.Join(parts, " ")
}

// renderTree prints one slot per line, indented by depth, with its hash
// and attributes.
func renderTree(w io.Writer, root *tree.Slot, opts renderOptions) error {
	var err error
	tree.Walk(root, func(s *tree.Slot, depth int) bool {
		style := NodeStyle
		if depth == 0 {
			style = TitleStyle
		}
		line := strings.Repeat("  ", depth) + style.Render(slotText(s, opts.Full)) +
			"  " + SubtitleStyle.Render(fmt.Sprintf("#%016x", s.Hash()))
		if attrs := attrText(s, func(k string) string { return KeyStyle.Render(k) }); attrs != "" {
			line += "  {" + attrs + "}"
		}
		_, err = fmt.Fprintln(w, line)
		return err == nil
	})
	return err
}

// treeMarkdown describes the tree as a markdown heading and nested list.
func treeMarkdown(root *tree.Slot, full bool) string {
	var b strings.Builder
	code := func(s string) string { return "`" + s + "`" }
	tree.Walk(root, func(s *tree.Slot, depth int) bool {
		text := slotText(s, full)
		attrs := attrText(s, func(k string) string { return k })
		if depth == 0 {
			fmt.Fprintf(&b, "# %s\n\n", text)
			if attrs != "" {
				fmt.Fprintf(&b, "%s\n\n", code(attrs))
			}
			return true
		}
		fmt.Fprintf(&b, "%s- **%s**", strings.Repeat("  ", depth-1), text)
		if attrs != "" {
			fmt.Fprintf(&b, " %s", code(attrs))
		}
		b.WriteString("\n")
		return true
	})
	return b.String()
}

func renderMarkdown(w io.Writer, root *tree.Slot, opts renderOptions) error {
	rendererOpts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.Width))
	}
	r, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return err
	}
	out, err := r.Render(treeMarkdown(root, opts.Full))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
