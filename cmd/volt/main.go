package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackcoderx/volt/pkg/core"
	"github.com/blackcoderx/volt/pkg/format"
	"github.com/blackcoderx/volt/pkg/httpexec"
	"github.com/blackcoderx/volt/pkg/storage"
	"github.com/blackcoderx/volt/pkg/tui"
	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via -ldflags; "dev" marks an unreleased
// build, matching the teacher's update-guard convention.
var version = "dev"

var (
	cfgFile  string
	dataDir  string
	rootCmd  = &cobra.Command{
		Use:   "volt",
		Short: "volt - terminal HTTP API tester and load tester",
		Long: `volt is a terminal-native HTTP client: organize requests into
collections, fill in templated variables, inspect formatted responses, and
run concurrent load tests against any endpoint, all without leaving the
terminal.`,
		Run: func(cmd *cobra.Command, args []string) {
			seedEnvVariables(resolveDataDir())
			if err := tui.Run(resolveDataDir()); err != nil {
				fmt.Fprintf(os.Stderr, "Error running volt: %v\n", err)
				os.Exit(1)
			}
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.volt/config.json)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "storage root for collections and variables (default ~/.volt)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(filepath.Join(defaultHome(), ".volt"))
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// seedEnvVariables loads .env (if present) and merges its key/value pairs
// into the default variable set the first time volt runs against dataDir,
// per SPEC_FULL.md's ".env-seeded default variable set" supplement.
// godotenv.Read leaves the process environment untouched, unlike Load.
func seedEnvVariables(dataDir string) {
	pairs, err := godotenv.Read()
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
		return
	}
	if err := storage.New(dataDir).SeedVariablesFromEnv(pairs); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to seed variables from .env: %v\n", err)
	}
}

func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if v := viper.GetString("data_dir"); v != "" {
		return v
	}
	return filepath.Join(defaultHome(), ".volt")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections and their endpoints",
	Run: func(cmd *cobra.Command, args []string) {
		store := storage.New(resolveDataDir())
		collections, loadErrors := store.ListCollections()
		for _, e := range loadErrors {
			fmt.Fprintf(os.Stderr, "warning: %v\n", e)
		}
		for _, c := range collections {
			fmt.Printf("%s\n", c.Name)
			for _, ep := range c.Endpoints {
				fmt.Printf("  %-7s %-30s %s\n", ep.Method, ep.Name, ep.URL)
			}
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run <collection>/<endpoint>",
	Short: "Execute one saved endpoint headlessly and print the response",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHeadless(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runHeadless(ref string) error {
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected <collection>/<endpoint>, got %q", ref)
	}
	collectionName, endpointName := parts[0], parts[1]

	seedEnvVariables(resolveDataDir())
	store := storage.New(resolveDataDir())
	collections, _ := store.ListCollections()
	var target *core.ApiEndpoint
	for _, c := range collections {
		if c.Name != collectionName {
			continue
		}
		for i := range c.Endpoints {
			if c.Endpoints[i].Name == endpointName {
				target = &c.Endpoints[i]
			}
		}
	}
	if target == nil {
		return fmt.Errorf("endpoint %q not found in collection %q", endpointName, collectionName)
	}

	variables, err := store.LoadVariables()
	if err != nil {
		return err
	}

	executor := httpexec.New()
	resp, err := executor.Execute(context.Background(), *target, core.RequestInputs{Variables: variables.Variables})
	if err != nil {
		return err
	}

	contentType := ""
	for _, h := range resp.Headers {
		if strings.EqualFold(h.Name, "Content-Type") {
			contentType = h.Value
		}
	}
	formatted := format.Format(resp.Body, format.DetectKind(contentType))

	fmt.Printf("%d %s (%v)\n", resp.StatusCode, resp.StatusText, resp.Duration)
	if renderer, rerr := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)); rerr == nil {
		if out, rerr := renderer.Render("```\n" + formatted + "\n```"); rerr == nil {
			fmt.Print(out)
			return nil
		}
	}
	fmt.Println(formatted)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
