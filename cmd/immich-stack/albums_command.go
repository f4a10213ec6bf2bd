package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"immichstack/internal/services/immich"
)

func newAlbumsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var verbose int

	cmd := &cobra.Command{
		Use:   "albums",
		Short: "List albums usable with --album",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(cmd, verbose)
			if err != nil {
				return err
			}
			client, err := ctx.client(logger)
			if err != nil {
				return err
			}
			albums, err := client.Albums(cmd.Context())
			if err != nil {
				return err
			}
			sort.SliceStable(albums, func(i, j int) bool {
				return strings.ToLower(albums[i].AlbumName) < strings.ToLower(albums[j].AlbumName)
			})

			if asJSON {
				return writeJSON(cmd, albums)
			}
			out := cmd.OutOrStdout()
			if len(albums) == 0 {
				fmt.Fprintln(out, "No albums found.")
				return nil
			}
			fmt.Fprintln(out, renderAlbumTable(albums))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit albums as JSON")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "Increase verbosity")
	return cmd
}

func renderAlbumTable(albums []immich.Album) string {
	printer := newCountPrinter()
	rows := make([][]string, 0, len(albums))
	total := 0
	for _, album := range albums {
		total += album.AssetCount
		rows = append(rows, []string{album.ID, album.AlbumName, printer.Sprintf("%d", album.AssetCount)})
	}
	spec := tableSpec{
		headers: []string{"ID", "Name", "Assets"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight},
		footer:  []string{"", strconv.Itoa(len(albums)) + " albums", printer.Sprintf("%d", total)},
	}
	return spec.render(rows)
}
