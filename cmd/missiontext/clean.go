package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkraft/missiontext/cleaner"
	"github.com/mkraft/missiontext/transcript"
)

func newCleanCmd(a *app) *cobra.Command {
	var inputDir, outputDir, grammar, pathFilter, ext string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Extract dialogue from raw transcript trees",
		Long: `Walk the input tree, run every matching file through the dialogue
extractor, and mirror the results under the output directory, one
utterance per line. The mission grammar handles bracketed-timecode
air-to-ground transcripts; the journal grammar handles flight-journal
pages with inline "h:mm:ss SPEAKER:" lines.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := a.cfg.Clean
			if inputDir != "" {
				cc.InputDir = inputDir
			}
			if outputDir != "" {
				cc.OutputDir = outputDir
			}
			if cmd.Flags().Changed("grammar") {
				cc.Grammar = grammar
				// Re-derive the filters for the new grammar unless
				// they are overridden below.
				cc.PathFilter, cc.Ext = "", ""
				switch grammar {
				case "mission":
					cc.PathFilter = "transcripts"
				case "journal":
					cc.Ext = ".txt"
				}
			}
			if cmd.Flags().Changed("path-filter") {
				cc.PathFilter = pathFilter
			}
			if cmd.Flags().Changed("ext") {
				cc.Ext = ext
			}

			var g *transcript.Grammar
			switch cc.Grammar {
			case "mission":
				g = transcript.MissionGrammar()
			case "journal":
				g = transcript.JournalGrammar()
			default:
				return fmt.Errorf("unsupported grammar %q (use mission or journal)", cc.Grammar)
			}

			db, store, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			r := cleaner.New(cleaner.Config{
				InputDir:   cc.InputDir,
				OutputDir:  cc.OutputDir,
				PathFilter: cc.PathFilter,
				Ext:        cc.Ext,
				Pipeline:   transcript.New(transcript.Config{Grammar: g, Logger: a.logger}),
				Catalog:    store,
				Logger:     a.logger,
			})

			stats, err := r.Run(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Printf("Files scanned: %d\n", stats.FilesScanned)
			cmd.Printf("Files written: %d\n", stats.FilesWritten)
			cmd.Printf("Utterances: %d\n", stats.Utterances)
			cmd.Printf("Output: %s\n", cc.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "", "root of the raw transcript tree")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for cleaned transcripts")
	cmd.Flags().StringVar(&grammar, "grammar", "", "transcript grammar (mission|journal)")
	cmd.Flags().StringVar(&pathFilter, "path-filter", "", "keep only files under this path component")
	cmd.Flags().StringVar(&ext, "ext", "", "keep only files with this extension")

	return cmd
}
