package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/thlorenz/files-provider/internal/log"
	"github.com/thlorenz/files-provider/internal/selection"
	"github.com/thlorenz/files-provider/pkg/provider"
	"github.com/thlorenz/files-provider/pkg/types"
)

type listOptions struct {
	patternFlags
	json bool
}

// NewListCmd creates the list command
func NewListCmd(root *rootOptions) *cobra.Command {
	o := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "List matching files with the keys pick would offer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			files, err := resolveAll(root, o.patternFlags, dir)
			if err != nil {
				return err
			}
			if o.json {
				return writeJSONLines(cmd.OutOrStdout(), files)
			}
			return writeTable(cmd.OutOrStdout(), files)
		},
	}

	cmd.Flags().StringVarP(&o.regex, "pattern", "p", "", "regular expression entry names must match")
	cmd.Flags().StringVarP(&o.glob, "glob", "g", "", "glob entry names must match, e.g. '*.md'")
	cmd.Flags().BoolVar(&o.json, "json", false, "print one JSON object per file")

	return cmd
}

// resolveAll returns every match in dir without prompting or handling
func resolveAll(root *rootOptions, flags patternFlags, dir string) ([]types.File, error) {
	matcher, err := flags.matcher(root.cfg)
	if err != nil {
		return nil, err
	}
	p, err := provider.New(
		provider.WithPattern(matcher),
		provider.WithSingle(types.Return),
		provider.WithMulti(types.Return),
		provider.WithTimestamps(true),
	)
	if err != nil {
		return nil, err
	}
	return p.FromDirectory(dir)
}

// row describes one listed file
type row struct {
	Key       string `json:"key"`
	FullPath  string `json:"full_path"`
	Entry     string `json:"entry"`
	Size      int64  `json:"size"`
	Mime      string `json:"mime"`
	Timestamp string `json:"timestamp"`
}

// rows numbers files the same way the pick menu does
func rows(files []types.File) []row {
	menu := selection.Build(files, false)
	return lo.FilterMap(menu.Entries(), func(e types.MenuEntry, _ int) (row, bool) {
		fc, ok := e.Choice.(types.FileChoice)
		if !ok {
			return row{}, false
		}
		r := row{
			Key:       e.Key,
			FullPath:  fc.File.FullPath,
			Entry:     fc.File.Entry,
			Timestamp: fc.File.Timestamp,
			Mime:      detectMime(fc.File.FullPath),
		}
		if info, err := os.Stat(fc.File.FullPath); err == nil {
			r.Size = info.Size()
		}
		return r, true
	})
}

// detectMime returns the media type without parameters
func detectMime(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		log.LogWithFields(log.F("path", path)).Debugf("Could not detect type: %v", err)
		return ""
	}
	media, _, _ := strings.Cut(mtype.String(), ";")
	return media
}

func writeJSONLines(w io.Writer, files []types.File) error {
	enc := json.NewEncoder(w)
	for _, r := range rows(files) {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, files []types.File) error {
	if len(files) == 0 {
		_, err := fmt.Fprintln(w, "No matching files")
		return err
	}

	data := lo.Map(rows(files), func(r row, _ int) []string {
		return []string{r.Key, r.Entry, humanize.Bytes(uint64(r.Size)), r.Mime, r.Timestamp}
	})

	t := table.New().
		Headers("KEY", "NAME", "SIZE", "TYPE", "MODIFIED").
		Rows(data...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 2, 0, 0)
			}
			return lipgloss.NewStyle().Padding(0, 2, 0, 0)
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}
