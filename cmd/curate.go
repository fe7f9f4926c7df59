package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillscout/internal/skills"
)

const promptDone = "Done"

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Include or exclude analyzed repositories from the skills profile",
	Run: func(_ *cobra.Command, _ []string) {
		curate()
	},
}

func init() {
	rootCmd.AddCommand(curateCmd)
}

func curate() {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	dataStore := openStore(config, logger)

	records, err := dataStore.LoadRecords()
	if err != nil || len(records) == 0 {
		logger.Info("exiting", zap.String("reason", "no analyzed repositories; run analyze first"))
		return
	}

	for {
		items := make([]string, 0, len(records)+1)
		for _, record := range records {
			mark := "included"
			if record.Excluded {
				mark = "excluded"
			}
			items = append(items, fmt.Sprintf("%s (%s, %d files)", record.Name, mark, record.FileCounts.Total))
		}
		items = append(items, promptDone)

		prompt := promptui.Select{
			Label: "Toggle a repository and press ENTER",
			Items: items,
			Size:  15,
		}

		idx, selected, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if selected == promptDone {
			break
		}

		records[idx].Excluded = !records[idx].Excluded
	}

	if err := dataStore.SaveRecords(records); err != nil {
		logger.Fatal("saving curated repositories", zap.Error(err))
	}

	profile := skills.Build(records)
	if err := dataStore.SaveProfile(profile); err != nil {
		logger.Fatal("saving the skills profile", zap.Error(err))
	}

	logger.Info("profile rebuilt", zap.Int("repos", profile.Summary.TotalRepos))
}
