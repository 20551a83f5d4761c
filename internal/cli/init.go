// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/webapi2swagger/internal/config"
	"github.com/api2spec/webapi2swagger/internal/scanner"
	"github.com/api2spec/webapi2swagger/internal/swagger"
	"github.com/api2spec/webapi2swagger/internal/util"
)

var (
	initForce       bool
	initDescription string
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new webapi2swagger configuration file",
		Long: `Initialize a new webapi2swagger configuration file in the current directory.

This command creates a webapi2swagger.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Finds the compiled module when the project holds exactly one
  - Infers the API title from the go.mod module path
  - Takes --assembly, --output, --title and --version from the command line

Example:
  webapi2swagger init                          # Detect and create config
  webapi2swagger init -a bin/orders.so         # Use a specific module
  webapi2swagger init --force                  # Overwrite existing config
  webapi2swagger init -t "Orders API" -v 2.0   # Set title and version`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	cmd.Flags().StringVar(&initDescription, "description", "", "API description for the Swagger info")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFileName

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	cfg := config.Default()

	if assembly != "" {
		cfg.Assembly = assembly
	} else if detected := detectAssembly(projectRoot); detected != "" {
		cfg.Assembly = detected
		printInfo("Detected module: %s", detected)
	}

	cfg.Output = "swagger.json"
	if output != "" {
		cfg.Output = output
		cfg.Format = swagger.FormatFromPath(output)
	}
	if format != "" {
		cfg.Format = format
	}

	info := detectProjectInfo(projectRoot)
	if title != "" {
		cfg.Swagger.Info.Title = title
	} else if info.Title != "" {
		cfg.Swagger.Info.Title = info.Title
	}
	if apiVersion != "" {
		cfg.Swagger.Info.Version = apiVersion
	}
	if initDescription != "" {
		cfg.Swagger.Info.Description = initDescription
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Assembly: %s", cfg.Assembly)
	printVerbose("Output: %s", cfg.Output)
	printVerbose("Title: %s", cfg.Swagger.Info.Title)

	return nil
}

// projectInfo holds information detected from the project.
type projectInfo struct {
	Title  string
	Module string
}

// detectProjectInfo detects project information from go.mod.
func detectProjectInfo(projectRoot string) projectInfo {
	info := projectInfo{}

	file, err := os.Open(filepath.Join(projectRoot, "go.mod"))
	if err != nil {
		return info
	}
	defer file.Close()

	lines := bufio.NewScanner(file)
	for lines.Scan() {
		line := lines.Text()
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		info.Module = strings.TrimSpace(strings.TrimPrefix(line, "module "))

		// "github.com/contoso/orders-api" -> "ordersapi"
		name := info.Module[strings.LastIndex(info.Module, "/")+1:]
		info.Title = util.TitleFromModule(name)
		break
	}

	return info
}

// detectAssembly returns the path, relative to projectRoot, of the only
// compiled module below it, or "" when there is none or more than one.
func detectAssembly(projectRoot string) string {
	files, err := scanner.New(scanner.Config{
		BasePath:        projectRoot,
		IncludePatterns: []string{"**/*" + scanner.ModuleExtension},
		ExcludePatterns: []string{".git/**", "vendor/**", "node_modules/**"},
	}).Scan()
	if err != nil || len(files) != 1 {
		if len(files) > 1 {
			printVerbose("Found %d modules, pass --assembly to pick one", len(files))
		}
		return ""
	}

	rel, err := filepath.Rel(projectRoot, files[0].Path)
	if err != nil {
		return files[0].Path
	}
	return rel
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# webapi2swagger configuration file
# Command-line flags override the values below.

`
	return append([]byte(header), data...), nil
}
