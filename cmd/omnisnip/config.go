package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omnisnip/omnisnip/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global configuration",
	Long:  `Get and set values in the global config file (~/.config/omnisnip/config.yml).`,
}

// ConfigResponse is the response for config get.
type ConfigResponse struct {
	SnippetsDir string `json:"snippets_dir,omitempty"`
	Editor      string `json:"editor,omitempty"`
	ResolvedDir string `json:"resolved_dir"`
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show configuration values",
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	resolved := config.ResolveDir(storageDir)

	if humanOutput {
		if cfg.SnippetsDir != "" {
			fmt.Printf("snippets_dir: %s\n", cfg.SnippetsDir)
		}
		if cfg.Editor != "" {
			fmt.Printf("editor: %s\n", cfg.Editor)
		}
		fmt.Printf("resolved storage dir: %s\n", resolved)
	} else {
		outputJSON(ConfigResponse{
			SnippetsDir: cfg.SnippetsDir,
			Editor:      cfg.Editor,
			ResolvedDir: resolved,
		})
	}

	return nil
}

// ConfigUpdateResponse is the response for config set.
type ConfigUpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  `Set a configuration value. Supported keys: snippets_dir, editor.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	switch key {
	case "snippets_dir":
		cfg.SnippetsDir = config.ExpandTilde(value)
	case "editor":
		cfg.Editor = value
	default:
		exitWithError(ExitConfigError, "unknown config key %q (valid: snippets_dir, editor)", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(ConfigUpdateResponse{Status: "updated", Key: key, Value: value})
	}

	return nil
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the global config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		if humanOutput {
			fmt.Println(config.GlobalConfigPath())
		} else {
			outputJSON(StatusResponse{Status: "ok", Path: config.GlobalConfigPath()})
		}
		return nil
	},
}
