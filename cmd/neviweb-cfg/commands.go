package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nevihome/neviweb/internal/entries"
	"github.com/nevihome/neviweb/internal/flow"
	"github.com/nevihome/neviweb/internal/form"
	"github.com/nevihome/neviweb/internal/logging"
	"github.com/nevihome/neviweb/internal/neviweb"
	"github.com/nevihome/neviweb/internal/settings"
	"github.com/nevihome/neviweb/internal/ui"
	"github.com/nevihome/neviweb/internal/urls"
	"github.com/nevihome/neviweb/internal/wizard/tui"
	"github.com/nevihome/neviweb/internal/worker"
)

// Account command flags
var (
	plainMode    bool
	hostOverride string
	registryPath string
	assumeYes    bool
)

// Worker pool sizing for cloud validation calls. The wizard awaits each
// call before issuing the next, so a small pool is plenty.
const (
	validationWorkers = 2
	validationQueue   = 4
)

func init() {
	// Common flags for account commands (persistent on root)
	rootCmd.PersistentFlags().BoolVar(&plainMode, "plain", false, "Use plain line prompts instead of the full-screen wizard")
	rootCmd.PersistentFlags().StringVar(&hostOverride, "host", "", "Neviweb service URL (overrides config file and NEVIWEB_HOST)")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "Registry file path (defaults to the per-user config dir)")

	// Add subcommands directly to root
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(networksCmd)
	rootCmd.AddCommand(removeCmd)
}

// loadEnvironment resolves settings and opens the entry registry with the
// persistent flag overrides applied.
func loadEnvironment() (*settings.Settings, *entries.Registry, error) {
	// Initialize logging from environment variable (silent by default)
	// Set NEVIWEB_LOG_LEVEL=debug to see detailed logs
	if err := logging.InitializeFromEnv(); err != nil {
		// Ignore error, GetLogger will create fallback logger
		_ = err
	}

	configDir, err := entries.GetConfigDir()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := settings.Load(configDir)
	if err != nil {
		return nil, nil, err
	}
	if hostOverride != "" {
		cfg.Host = strings.TrimRight(hostOverride, "/")
	}
	if registryPath != "" {
		cfg.RegistryFile = registryPath
	}

	registry, err := entries.Load(cfg.RegistryFile)
	if err != nil {
		return nil, nil, err
	}

	return cfg, registry, nil
}

// newClient creates a Neviweb API client from the resolved settings.
func newClient(cfg *settings.Settings) *neviweb.Client {
	client := neviweb.NewClient(cfg.Host)
	client.SetTimeout(cfg.Timeout)
	return client
}

// driveFlow runs a flow through the full-screen wizard, or through plain
// line prompts when --plain is set or stdout is not a terminal. The bool
// reports whether the flow ran to completion; false means the user backed
// out and nothing should be persisted.
func driveFlow(ctx context.Context, cmd *cobra.Command, f flow.Flow) (flow.Result, bool, error) {
	if plainMode || !term.IsTerminal(int(os.Stdout.Fd())) {
		pr := ui.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		result, err := ui.RunFlow(ctx, f, pr)
		if errors.Is(err, io.EOF) {
			// Input ran out mid-prompt; treat it like a cancelled wizard.
			return flow.Result{}, false, nil
		}
		if err != nil {
			return flow.Result{}, false, err
		}
		return result, true, nil
	}

	return tui.Run(ctx, f)
}

// setupCmd adds an account through the interactive wizard
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Add a Neviweb account",
	Long: `Add a Neviweb account through the interactive setup wizard.

The wizard signs in to the Neviweb service to validate your credentials,
lets you pick up to three sub-networks to import devices from, and records
polling options. The completed configuration is written to the local
registry; the password is stored so later runs can sign in unattended.`,
	Example: `  # Launch the setup wizard
  neviweb-cfg setup
  # Or simply (setup is default):
  neviweb-cfg

  # Plain prompts for terminals without alternate-screen support
  neviweb-cfg setup --plain`,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, registry, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logging.Sync()

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Account setup", "neviweb-cfg setup",
		ui.Param{Key: "Service", Value: cfg.Host},
		ui.Param{Key: "Registry", Value: registry.Path()},
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	pool := worker.New(validationWorkers, validationQueue)
	pool.Start(ctx)
	defer pool.Stop()
	defer cancel() // runs before Stop, releasing the workers

	setup := flow.NewSetupFlow(registry, newClient(cfg), pool)

	result, completed, err := driveFlow(ctx, cmd, setup)
	if err != nil {
		return fmt.Errorf("setup wizard error: %w", err)
	}

	if !completed {
		printer.Println("Setup cancelled. No changes were made.")
		return nil
	}

	switch result.Type {
	case flow.CreateEntry:
		return saveNewEntry(printer, registry, result)
	case flow.Abort:
		printer.PrintWarning(flow.AbortText(result.Reason),
			ui.Detail{Key: "Registry", Value: registry.Path()})
		return nil
	default:
		return fmt.Errorf("setup flow ended in unexpected state %v", result.Type)
	}
}

// saveNewEntry persists a completed setup result and reports the outcome.
func saveNewEntry(printer *ui.Printer, registry *entries.Registry, result flow.Result) error {
	entry := entries.NewEntry(result.Record)
	if err := registry.Add(entry); err != nil {
		return fmt.Errorf("failed to store account: %w", err)
	}
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	printer.PrintSuccess("Account configured",
		ui.Detail{Key: "Account", Value: entry.Title},
		ui.Detail{Key: "Networks", Value: networksLabel(result.Record)},
		ui.Detail{Key: "Scan interval", Value: fmt.Sprintf("%ds", result.Record.ScanInterval)},
		ui.Detail{Key: "Statistics interval", Value: fmt.Sprintf("%ds", result.Record.StatInterval)},
		ui.Detail{Key: "Registry", Value: registry.Path()},
	)
	printer.Printf("Use 'neviweb-cfg options %s' to change polling options later\n", entry.Title)
	return nil
}

// networksLabel renders the sub-network selections for display.
func networksLabel(record entries.Record) string {
	networks := record.Networks()
	if len(networks) == 0 {
		return "all devices"
	}
	return strings.Join(networks, ", ")
}

// optionsCmd edits polling options for a configured account
var optionsCmd = &cobra.Command{
	Use:   "options <username>",
	Short: "Edit polling options for an account",
	Long: `Edit the polling options of a configured account.

Options control how often devices are polled, how often energy statistics
are collected, HomeKit-compatible mode, MiWi device handling and
notification routing. Changes apply as an overlay; the credentials and
network selections recorded at setup time are untouched.`,
	Example: `  # Edit options interactively
  neviweb-cfg options me@example.com

  # Plain prompts
  neviweb-cfg options me@example.com --plain`,
	Args: cobra.ExactArgs(1),
	RunE: runOptions,
}

func runOptions(cmd *cobra.Command, args []string) error {
	_, registry, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logging.Sync()

	entry := registry.Get(entries.UniqueID(args[0]))
	if entry == nil {
		return fmt.Errorf("no configured account for %q (run 'neviweb-cfg accounts' to list them)", args[0])
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Polling options", "neviweb-cfg options "+args[0],
		ui.Param{Key: "Account", Value: entry.Title},
		ui.Param{Key: "Registry", Value: registry.Path()},
	)

	result, completed, err := driveFlow(cmd.Context(), cmd, flow.NewOptionsFlow(entry))
	if err != nil {
		return fmt.Errorf("options wizard error: %w", err)
	}

	if !completed {
		printer.Println("Options edit cancelled. No changes were made.")
		return nil
	}

	if result.Type != flow.UpdateEntry {
		return fmt.Errorf("options flow ended in unexpected state %v", result.Type)
	}

	if err := registry.SetOptions(result.UniqueID, result.Options); err != nil {
		return fmt.Errorf("failed to update options: %w", err)
	}
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	printer.PrintSuccess("Options updated",
		ui.Detail{Key: "Account", Value: entry.Title},
		ui.Detail{Key: "Scan interval", Value: fmt.Sprintf("%ds", result.Options.ScanInterval)},
		ui.Detail{Key: "Statistics interval", Value: fmt.Sprintf("%ds", result.Options.StatInterval)},
		ui.Detail{Key: "Notify", Value: result.Options.Notify},
	)
	printer.Printf("Polling guidance: %s\n", urls.PollingOptions)
	return nil
}

// accountsCmd lists configured accounts
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List configured accounts",
	Long: `List the accounts stored in the local registry.

For each account the display title, selected sub-networks and effective
polling options are shown. Passwords are never printed.`,
	Example: `  neviweb-cfg accounts`,
	RunE:    runAccounts,
}

func runAccounts(cmd *cobra.Command, args []string) error {
	_, registry, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logging.Sync()

	list := registry.List()
	if len(list) == 0 {
		fmt.Println("No accounts configured.")
		fmt.Println()
		fmt.Println("Run 'neviweb-cfg setup' to add one.")
		fmt.Println("Getting started guide: " + urls.GettingStarted)
		return nil
	}

	fmt.Printf("Found %d account(s) in %s:\n\n", len(list), registry.Path())

	for i, entry := range list {
		options := entry.EffectiveOptions()
		fmt.Printf("%d. %s\n", i+1, entry.Title)
		fmt.Printf("   Networks: %s\n", networksLabel(entry.Record))
		fmt.Printf("   Options:  scan %ds, stats %ds, notify %s\n",
			options.ScanInterval, options.StatInterval, options.Notify)
		fmt.Printf("   Added:    %s\n", entry.CreatedAt.Format("2006-01-02"))
		fmt.Println()
	}

	fmt.Println("Use 'neviweb-cfg options <username>' to edit polling options")
	fmt.Println("Use 'neviweb-cfg remove <username>' to remove an account")

	return nil
}

// networksCmd lists the sub-networks of a Neviweb account
var networksCmd = &cobra.Command{
	Use:   "networks <username>",
	Short: "List the sub-networks of a Neviweb account",
	Long: `Sign in to the Neviweb service and list the account's sub-networks.

Useful for checking what the setup wizard will offer before running it, or
for verifying credentials without touching the registry. The password is
prompted for and never stored.`,
	Example: `  neviweb-cfg networks me@example.com`,
	Args:    cobra.ExactArgs(1),
	RunE:    runNetworks,
}

func runNetworks(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logging.Sync()

	username := args[0]

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Network listing", "neviweb-cfg networks "+username,
		ui.Param{Key: "Service", Value: cfg.Host},
		ui.Param{Key: "Account", Value: username},
	)

	pr := ui.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	raw, err := pr.PromptSchema(passwordSchema())
	if err != nil {
		return err
	}
	password := raw[entries.KeyPassword]
	if password == "" {
		return fmt.Errorf("a password is required")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	pool := worker.New(validationWorkers, validationQueue)
	pool.Start(ctx)
	defer pool.Stop()
	defer cancel() // runs before Stop, releasing the workers

	fmt.Print("\nSigning in...\n\n")

	validation, err := newClient(cfg).Validate(ctx, pool, username, password)
	if err != nil {
		printer.PrintFailure("Sign-in failed", err, []string{
			"Check the username and password at " + cfg.Host,
			"Make sure the account has at least one registered gateway",
			"See " + urls.TroubleshootingGuide,
		})
		return fmt.Errorf("sign-in to %s failed", cfg.Host)
	}

	if len(validation.Networks) == 0 {
		fmt.Println("No sub-networks on this account.")
		fmt.Println("The setup wizard will skip network selection and import all devices.")
		return nil
	}

	fmt.Printf("Found %d sub-network(s):\n\n", len(validation.Networks))
	for i, name := range validation.Networks {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	fmt.Println()
	fmt.Println("Up to three sub-networks can be selected during 'neviweb-cfg setup'")

	return nil
}

// passwordSchema is the single prompt the networks command needs.
func passwordSchema() form.Schema {
	return form.Schema{
		Name: "password",
		Fields: []form.Field{{
			Name:     entries.KeyPassword,
			Kind:     form.String,
			Label:    "Password",
			Required: true,
			Secret:   true,
		}},
	}
}

// removeCmd removes a configured account
var removeCmd = &cobra.Command{
	Use:   "remove <username>",
	Short: "Remove a configured account",
	Long: `Remove an account from the local registry.

The stored credentials, network selections and options are deleted. The
Neviweb account itself is untouched; run 'neviweb-cfg setup' to add it
back at any time.`,
	Example: `  # Remove with confirmation prompt
  neviweb-cfg remove me@example.com

  # Skip the prompt (for scripts)
  neviweb-cfg remove me@example.com --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&assumeYes, "yes", false, "Skip the confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	_, registry, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logging.Sync()

	entry := registry.Get(entries.UniqueID(args[0]))
	if entry == nil {
		return fmt.Errorf("no configured account for %q (run 'neviweb-cfg accounts' to list them)", args[0])
	}

	if !assumeYes {
		details := []ui.Detail{
			{Key: "Account", Value: entry.Title},
			{Key: "Networks", Value: networksLabel(entry.Record)},
			{Key: "Registry", Value: registry.Path()},
		}
		if !ui.ConfirmRemoval(cmd.InOrStdin(), cmd.OutOrStdout(), entry.Title, details) {
			return nil
		}
	}

	if err := registry.Remove(entry.UniqueID); err != nil {
		return fmt.Errorf("failed to remove account: %w", err)
	}
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintSuccess("Account removed",
		ui.Detail{Key: "Account", Value: entry.Title},
		ui.Detail{Key: "Registry", Value: registry.Path()},
	)
	return nil
}
