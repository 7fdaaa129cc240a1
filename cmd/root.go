/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant"
	"github.com/gnames/gntenant/internal/ioconfig"
	"github.com/gnames/gntenant/internal/iofs"
	"github.com/gnames/gntenant/internal/iologger"
	"github.com/gnames/gntenant/pkg/config"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			gntenant.Version, gntenant.Build),
		Use:   "gntenant",
		Short: "GNtenant manages per-tenant PostgreSQL schemas",
		Long: `GNtenant manages tenants of a shared PostgreSQL database where
every tenant lives in its own schema.

Commands:
  - create: create a tenant schema from an SQL template
  - destroy: drop a tenant schema with all its objects
  - dump: write portable SQL of a schema, table, functions or extensions
  - migrate: apply SQL migrations to tenant schemas
  - list: show existing tenant schemas
  - run: execute an SQL file inside one tenant schema

Configuration precedence (highest to lowest):
  1. CLI flags (--host, --port, etc.)
  2. Environment variables (GNTENANT_*)
  3. Config file (~/.config/gntenant/config.yaml)
  4. Built-in defaults

Nested fields use underscores in environment variables
(database.host becomes GNTENANT_DATABASE_HOST).`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gntenant version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gntenant")

	pf := rootCmd.PersistentFlags()
	pf.String("host", "", "PostgreSQL host")
	pf.Int("port", 0, "PostgreSQL port")
	pf.StringP("user", "U", "", "PostgreSQL user")
	pf.StringP("database", "d", "", "PostgreSQL database")
	pf.StringSlice("shared", nil,
		"schemas appended to every tenant search_path")
	pf.IntP("jobs", "j", 0, "number of concurrent jobs")

	rootCmd.AddCommand(
		getCreateCmd(),
		getDestroyCmd(),
		getDumpCmd(),
		getMigrateCmd(),
		getListCmd(),
		getRunCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if cfg, err = ioconfig.Load(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	cfg.Update(flagOptions(cmd))

	// Reconfigure logging with user's settings
	err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"database", cfg.Database.Database,
	)
	return nil
}

// flagOptions converts explicitly set persistent flags to options. Flags
// that were not set keep values from the config file and environment.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	fs := cmd.Flags()

	if fs.Changed("host") {
		v, _ := fs.GetString("host")
		res = append(res, config.OptDatabaseHost(v))
	}
	if fs.Changed("port") {
		v, _ := fs.GetInt("port")
		res = append(res, config.OptDatabasePort(v))
	}
	if fs.Changed("user") {
		v, _ := fs.GetString("user")
		res = append(res, config.OptDatabaseUser(v))
	}
	if fs.Changed("database") {
		v, _ := fs.GetString("database")
		res = append(res, config.OptDatabaseDatabase(v))
	}
	if fs.Changed("shared") {
		v, _ := fs.GetStringSlice("shared")
		res = append(res, config.OptTenantSharedSchemas(v))
	}
	if fs.Changed("jobs") {
		v, _ := fs.GetInt("jobs")
		res = append(res, config.OptJobsNumber(v))
	}
	return res
}

func runRoot(cmd *cobra.Command, _ []string) error {
	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
