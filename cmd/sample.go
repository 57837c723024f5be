package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/killallgit/podradio/internal/models"
	"github.com/killallgit/podradio/internal/registry"
	"github.com/killallgit/podradio/internal/services/episodes"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a random selection of episodes as JSON",
	Long: `Run the sampling engine once and print the selected episodes.

Example:
  podradio sample
  podradio sample --count 5 --time new --lang en`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().Int("count", 0, "number of episodes (0 = sampling.default_count)")
	sampleCmd.Flags().String("time", string(models.TimePreferenceAll), "time preference (all, new)")
	sampleCmd.Flags().String("lang", "", "language code (default registry.default_language)")
}

func runSample(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	rawCount := ""
	if n, _ := cmd.Flags().GetInt("count"); n != 0 {
		rawCount = strconv.Itoa(n)
	}
	count, err := episodes.ParseCount(rawCount, appConfig.Sampling.DefaultCount, appConfig.Sampling.MaxCount)
	if err != nil {
		return err
	}

	timeFlag, _ := cmd.Flags().GetString("time")
	preference, err := models.ParseTimePreference(timeFlag)
	if err != nil {
		return err
	}

	langFlag, _ := cmd.Flags().GetString("lang")
	lang := registry.ResolveLanguage(langFlag,
		registry.ResolveLanguage(appConfig.Registry.DefaultLanguage, registry.DefaultLanguage))

	reg, db, err := newRegistry(appConfig)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	selected := newSampler(appConfig, reg).SelectEpisodes(commandContext(cmd), count, preference, lang)

	out, err := json.MarshalIndent(selected, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding episodes: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
