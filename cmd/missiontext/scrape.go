package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkraft/missiontext/scrape"
	"github.com/mkraft/missiontext/urlcheck"
)

func newScrapeCmd(a *app) *cobra.Command {
	var urlsFile, outputDir, archiveDir string
	var maxLinks, timeoutSec, delayMS int

	cmd := &cobra.Command{
		Use:   "scrape [url...]",
		Short: "Collect transcript pages linked from journal main pages",
		Long: `Fetch each main journal page, discover the transcript pages it links
to, and save their plain text per mission. Main URLs come from the
arguments or, when none are given, from the configured URLs file.
Unchanged pages (by content hash) are skipped on later runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Scrape
			if urlsFile != "" {
				sc.URLsFile = urlsFile
			}
			if outputDir != "" {
				sc.OutputDir = outputDir
			}
			if archiveDir != "" {
				sc.ArchiveDir = archiveDir
			}
			if cmd.Flags().Changed("max-links") {
				sc.MaxLinksPerMain = maxLinks
			}
			if cmd.Flags().Changed("timeout") {
				sc.TimeoutSeconds = timeoutSec
			}
			if cmd.Flags().Changed("delay") {
				sc.DelayMS = delayMS
			}

			mains := args
			if len(mains) == 0 {
				var err error
				mains, err = scrape.ReadURLs(sc.URLsFile)
				if err != nil {
					return fmt.Errorf("read urls: %w", err)
				}
			}
			if len(mains) == 0 {
				return fmt.Errorf("no main urls given and %s is empty", sc.URLsFile)
			}

			db, store, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			cfg := scrape.Config{
				OutputDir:       sc.OutputDir,
				ArchiveDir:      sc.ArchiveDir,
				MaxLinksPerMain: sc.MaxLinksPerMain,
				Delay:           sc.Delay(),
				Timeout:         sc.Timeout(),
				UserAgent:       sc.UserAgent,
				Catalog:         store,
				Logger:          a.logger,
			}
			if sc.BlockPrivateHosts {
				cfg.URLValidator = urlcheck.CheckPublic
			}
			s := scrape.New(cfg)

			manifest, err := s.Run(cmd.Context(), mains)
			if err != nil {
				return err
			}

			st := manifest.Stats
			cmd.Printf("Mains fetched: %d\n", st.Mains)
			cmd.Printf("Pages saved: %d (%d unchanged, %d empty, %d errors)\n",
				st.Saved, st.Unchanged, st.Empty, st.Errors)
			cmd.Printf("Output: %s\n", sc.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&urlsFile, "urls", "", "file listing main journal URLs, one per line")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for scraped mission text")
	cmd.Flags().StringVar(&archiveDir, "archive-dir", "", "enable the Markdown archive in this directory")
	cmd.Flags().IntVar(&maxLinks, "max-links", 0, "cap transcript links per main page (0 = no cap)")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&delayMS, "delay", 0, "pause between page fetches in milliseconds (negative disables)")

	return cmd
}
