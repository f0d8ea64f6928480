package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/scgpm/interop"
	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/format"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		kindName string
		fields   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the layout and contents of a metrics file",
		Long: `Decode a metrics file and print its header, record schema, binning table,
record counts, stored size and xxHash64 digest. The file kind is taken from
the file name unless --kind is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var kind format.FileKind
			if kindName != "" {
				var ok bool
				if kind, ok = format.ParseFileKind(kindName); !ok {
					return fmt.Errorf("%w: %q", errs.ErrUnknownFileKind, kindName)
				}
			} else {
				var err error
				if kind, err = interop.KindFromPath(path); err != nil {
					return fmt.Errorf("%w (use --kind)", err)
				}
			}

			info, err := interop.Inspect(path, kind, a.decodeOptions(false)...)
			if err != nil {
				return err
			}

			renderInfo(cmd.OutOrStdout(), info, fields)

			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "", "file kind: quality, extraction or corrected")
	cmd.Flags().BoolVar(&fields, "fields", false, "also list the record fields")

	return cmd
}

func renderInfo(w io.Writer, info *interop.FileInfo, fields bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(info.Path)
	tw.AppendRows([]table.Row{
		{"Kind", info.Kind},
		{"Version", info.Header.Version},
		{"Record length", info.Header.RecordLength},
		{"Schema", info.Schema},
		{"Compression", info.Compression},
		{"Size", fmt.Sprintf("%s (%d bytes)", humanize.Bytes(uint64(info.Size)), info.Size)},
		{"Digest", info.Digest},
		{"Records", humanize.Comma(int64(info.Records))},
		{"Skipped", humanize.Comma(int64(info.Skipped))},
		{"Duplicates", humanize.Comma(int64(info.Duplicates))},
		{"Lanes", joinInts(info.Lanes)},
		{"Max cycle", info.MaxCycle},
	})
	tw.Render()

	if b := info.Binning; b.Count() > 0 {
		bins := table.NewWriter()
		bins.SetOutputMirror(w)
		bins.SetStyle(table.StyleLight)
		bins.SetTitle("Quality bins")
		bins.AppendHeader(table.Row{"Bin", "Lower", "Upper", "Remapped"})
		for i := range b.Count() {
			bins.AppendRow(table.Row{i + 1, b.Lower[i], b.Upper[i], b.Remap[i]})
		}
		bins.Render()
	}

	if fields {
		ft := table.NewWriter()
		ft.SetOutputMirror(w)
		ft.SetStyle(table.StyleLight)
		ft.SetTitle("Record fields")
		ft.AppendHeader(table.Row{"#", "Name", "Type", "Offset"})
		for i, f := range info.Schema.Fields {
			ft.AppendRow(table.Row{i, f.Name, f.Type, info.Schema.Offset(i)})
		}
		ft.Render()
	}
}

func joinInts(v []uint16) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = strconv.Itoa(int(n))
	}

	return strings.Join(s, ",")
}
