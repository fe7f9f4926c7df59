package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillscout/internal/jobs"
	"github.com/spigell/skillscout/internal/matching"
	"github.com/spigell/skillscout/internal/util"
)

const descriptionLogLimit = 120

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage and match imported job postings",
}

var jobsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import job postings from a JSON file",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		importJobs(args[0])
	},
}

var jobsMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score stored jobs against the skills profile",
	Run: func(cmd *cobra.Command, _ []string) {
		matchJobs(cmd)
	},
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored jobs grouped by company",
	Run: func(_ *cobra.Command, _ []string) {
		listJobs()
	},
}

func init() {
	jobsCmd.AddCommand(jobsImportCmd)
	jobsCmd.AddCommand(jobsMatchCmd)
	jobsCmd.AddCommand(jobsListCmd)
	rootCmd.AddCommand(jobsCmd)

	jobsMatchCmd.Flags().Bool("full", false, "dump full match results as json")
}

func importJobs(path string) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading jobs payload", zap.String("file", path), zap.Error(err))
	}

	dataStore := openStore(config, logger)

	existing, err := dataStore.LoadJobs()
	if err != nil {
		logger.Fatal("loading stored jobs", zap.Error(err))
	}

	updated, report, err := jobs.NewIngestor(logger).Ingest(payload, existing)
	if err != nil {
		logger.Fatal("ingesting jobs", zap.String("file", path), zap.Error(err))
	}

	if err := dataStore.SaveJobs(updated); err != nil {
		logger.Fatal("saving jobs", zap.Error(err))
	}

	for _, invalid := range report.Errors {
		logger.Warn("rejected job entry", zap.Strings("errors", invalid.Errors))
	}

	fmt.Printf("imported %s: %d added, %d skipped, %d invalid (total stored: %d)\n",
		path, report.Added, report.Skipped, len(report.Errors), updated.Len())
}

func matchJobs(cmd *cobra.Command) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	dataStore := openStore(config, logger)

	list, err := dataStore.LoadJobs()
	if err != nil {
		logger.Fatal("loading stored jobs", zap.Error(err))
	}
	if list.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no stored jobs; run jobs import first"))
		return
	}

	profile, err := dataStore.LoadProfile()
	if err != nil || profile == nil {
		logger.Info("exiting", zap.String("reason", "no skills profile; run analyze first"))
		return
	}

	results := matching.Match(list, profile, config.Prefs)
	buckets := matching.Categorize(results)

	if cmd.Flag("full").Value.String() == "true" {
		pretty, _ := json.MarshalIndent(buckets, "", "  ")
		fmt.Println(string(pretty))
		return
	}

	printBucket("want", buckets.Want)
	printBucket("qualified", buckets.Qualified)
	printBucket("stretch", buckets.Stretch)

	logger.Info("matching finished",
		zap.Int("jobs", list.Len()),
		zap.Int("want", len(buckets.Want)),
		zap.Int("qualified", len(buckets.Qualified)),
		zap.Int("stretch", len(buckets.Stretch)),
		zap.Int("filtered", len(buckets.Filtered)),
	)
}

func printBucket(name string, results []*matching.Result) {
	if len(results) == 0 {
		return
	}

	fmt.Printf("%s (%d):\n", name, len(results))
	for _, r := range results {
		fmt.Printf("  [%3d] %s @ %s", r.Score, r.Job.Title, r.Job.Company)
		if r.Job.Location != "" {
			fmt.Printf(" (%s)", r.Job.Location)
		}
		fmt.Println()
		if r.Job.Description != "" {
			fmt.Printf("        %s\n", util.TruncateForLog(r.Job.Description, descriptionLogLimit))
		}
	}
}

func listJobs() {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	dataStore := openStore(config, logger)

	list, err := dataStore.LoadJobs()
	if err != nil {
		logger.Fatal("loading stored jobs", zap.Error(err))
	}
	if list.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no stored jobs"))
		return
	}

	pretty, _ := json.MarshalIndent(list.ReportByCompany(), "", "  ")
	fmt.Println(string(pretty))
}
