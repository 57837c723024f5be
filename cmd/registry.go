package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killallgit/podradio/internal/logging"
	"github.com/killallgit/podradio/internal/registry"
	"github.com/killallgit/podradio/pkg/config"
	apperrors "github.com/killallgit/podradio/pkg/errors"
)

// registryCmd groups registry maintenance commands
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and import feed registries",
	Long: `Inspect and import the per-language feed and singles registries.

Available subcommands:
  import  - Copy content/<lang>/feeds.md and singles.json into the database
  list    - Print the feeds and singles of a language`,
}

var registryImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import file registries into the database",
	Args:  cobra.NoArgs,
	RunE:  runRegistryImport,
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registry entries of a language",
	Args:  cobra.NoArgs,
	RunE:  runRegistryList,
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryImportCmd)
	registryCmd.AddCommand(registryListCmd)

	registryImportCmd.Flags().String("langs", "", "comma-separated languages to import (default all)")
	registryImportCmd.Flags().String("content-dir", "", "content directory (overrides registry.content_dir)")

	registryListCmd.Flags().String("lang", "", "language code (default registry.default_language)")
	registryListCmd.Flags().String("source", "", "registry source to read: files or database (overrides registry.source)")
}

func runRegistryImport(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	contentDir, _ := cmd.Flags().GetString("content-dir")
	if contentDir == "" {
		contentDir = appConfig.Registry.ContentDir
	}
	langsFlag, _ := cmd.Flags().GetString("langs")
	langs := registry.ParseLanguages(langsFlag)
	if len(langs) == 0 {
		return apperrors.ValidationError("langs", fmt.Sprintf("no supported language in %q", langsFlag))
	}

	db, err := openDatabase(appConfig)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseConnection, "cannot open registry database")
	}
	defer db.Close()

	results, err := registry.Import(commandContext(cmd), registry.NewFileRegistry(contentDir), db.DB, langs)
	if err != nil {
		return apperrors.DatabaseError("registry import", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported from %s into %s\n", contentDir, appConfig.Database.Path)
	fmt.Fprintln(out, strings.Repeat("-", 40))
	for _, r := range results {
		fmt.Fprintf(out, "%-4s feeds: %-5d singles: %d\n", r.Language, r.Feeds, r.Singles)
	}
	logging.Info("registry import finished", "languages", len(results))
	return nil
}

func runRegistryList(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	cfg := *appConfig
	if source, _ := cmd.Flags().GetString("source"); source != "" {
		if source != config.RegistrySourceFiles && source != config.RegistrySourceDatabase {
			return apperrors.ValidationError("source", "must be files or database")
		}
		cfg.Registry.Source = source
	}

	langFlag, _ := cmd.Flags().GetString("lang")
	lang := registry.ResolveLanguage(langFlag,
		registry.ResolveLanguage(cfg.Registry.DefaultLanguage, registry.DefaultLanguage))

	reg, db, err := newRegistry(&cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	ctx := commandContext(cmd)
	feedList, err := reg.GetFeeds(ctx, lang)
	if err != nil {
		return err
	}
	singles, err := reg.GetSingles(ctx, lang)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Registry %s (%s, source: %s)\n", lang, registry.LanguageName(lang), cfg.Registry.Source)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Feeds (%d):\n", len(feedList))
	for _, f := range feedList {
		fmt.Fprintf(out, "  %s  %s\n", f.Name, f.URL)
	}
	fmt.Fprintf(out, "Singles (%d):\n", len(singles))
	for _, s := range singles {
		fmt.Fprintf(out, "  %s  (%s)\n", s.Title, s.PodcastName)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
