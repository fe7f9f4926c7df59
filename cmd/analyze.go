package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillscout/internal/analyzer"
	"github.com/spigell/skillscout/internal/gitinfo"
	"github.com/spigell/skillscout/internal/skills"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [root]",
	Short: "Analyze local repositories and rebuild the skills profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func analyze(_ *cobra.Command, args []string) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	root := config.Root
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		root = "."
	}

	logger.Info("starting the analysis", zap.String("root", root))

	repos, err := analyzer.Discover(root)
	if err != nil {
		var discovery *analyzer.DiscoveryError
		if errors.As(err, &discovery) {
			logger.Fatal("discovery root is not readable",
				zap.String("root", discovery.Root),
				zap.Error(discovery.Err),
			)
		}
		logger.Fatal("discovering repositories", zap.Error(err))
	}

	if len(repos) == 0 {
		logger.Info("exiting", zap.String("reason", "no repositories found under root"))
		return
	}

	logger.Info("discovered repositories", zap.Int("count", len(repos)))

	dataStore := openStore(config, logger)

	previous, _ := dataStore.LoadRecords()
	excluded := make(map[string]bool, len(previous))
	for _, record := range previous {
		if record.Excluded {
			excluded[record.Path] = true
		}
	}

	extractor := analyzer.NewExtractor(gitinfo.NewCLI(logger), logger)

	records := make([]*analyzer.Record, 0, len(repos))
	for _, path := range repos {
		record := extractor.Extract(path)
		// Curation choices survive re-analysis.
		record.Excluded = excluded[record.Path]
		records = append(records, record)

		logger.Info("analyzed repository",
			zap.String("repo", record.Name),
			zap.Int("files", record.FileCounts.Total),
			zap.String("freshness", string(record.History.Freshness)),
		)
	}

	if err := dataStore.SaveRecords(records); err != nil {
		logger.Fatal("saving analyzed repositories", zap.Error(err))
	}

	profile := skills.Build(records)
	if err := dataStore.SaveProfile(profile); err != nil {
		logger.Fatal("saving the skills profile", zap.Error(err))
	}

	printProfileSummary(profile)
}

func printProfileSummary(profile *skills.Profile) {
	fmt.Printf("analyzed %d repositories, %d commits, ~%d years active\n",
		profile.Summary.TotalRepos, profile.Summary.TotalCommits, profile.Summary.YearsActive)

	if len(profile.Summary.TopLanguages) > 0 {
		fmt.Printf("top languages:  %s\n", strings.Join(profile.Summary.TopLanguages, ", "))
	}
	if len(profile.Summary.TopFrameworks) > 0 {
		fmt.Printf("top frameworks: %s\n", strings.Join(profile.Summary.TopFrameworks, ", "))
	}
	if len(profile.Domains) > 0 {
		fmt.Printf("domains:        %s\n", strings.Join(profile.Domains, ", "))
	}
}
