// Package main is the entry point for the drumsplit CLI
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/like-daffy/midi-drum-part-splitter/pkg/api"
	"github.com/like-daffy/midi-drum-part-splitter/pkg/mapping"
	"github.com/like-daffy/midi-drum-part-splitter/pkg/splitter"
	"github.com/like-daffy/midi-drum-part-splitter/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	mappingFile string
	serverPort  int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drumsplit",
	Short: "Split drum MIDI files into per-part files",
	Long: `drumsplit splits a Standard MIDI File containing a drum performance
into independent MIDI files, one per drum part (kick, snare, hihat,
ride, crash, tom), based on a configurable note mapping.

Output files are written next to the source file, named
"<name>-<part>.mid". Tempo, time signature and the other structural
events are carried into every part so each file stays playable.

Examples:
  drumsplit split song.mid
  drumsplit split song.mid -m my-mapping.yaml
  drumsplit template
  drumsplit inspect my-mapping.yaml
  drumsplit tui
  drumsplit serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var splitCmd = &cobra.Command{
	Use:   "split <input.mid> [more.mid ...]",
	Short: "Split one or more drum MIDI files by part",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSplit,
}

var templateCmd = &cobra.Command{
	Use:   "template [output.yaml]",
	Short: "Export the default mapping as a YAML template",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTemplate,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [mapping.yaml]",
	Short: "Validate a mapping and print its note assignments",
	Long:  `Validates a YAML mapping document (or the built-in default when no file is given) and prints each part with its resolved note numbers and names.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	splitCmd.Flags().StringVarP(&mappingFile, "mapping", "m", "", "Custom YAML mapping file (defaults to the built-in mapping)")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

// effectiveMapping loads the -m flag file, or falls back to the default.
// Mapping validation happens once, before any file is parsed, so a bad
// mapping never produces partially-written output.
func effectiveMapping() (*mapping.Mapping, error) {
	if mappingFile == "" {
		return mapping.Default(), nil
	}
	return mapping.LoadFile(mappingFile)
}

func runSplit(cmd *cobra.Command, args []string) error {
	m, err := effectiveMapping()
	if err != nil {
		return err
	}

	failures := 0
	for _, input := range args {
		res, err := splitter.SplitFile(input, m)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", input, err)
			failures++
			continue
		}
		for _, path := range res.Saved {
			fmt.Printf("%s -> %s\n", input, path)
		}
		if len(res.Skipped) > 0 {
			fmt.Printf("%s: no notes for %v\n", input, res.Skipped)
		}
		if len(res.Failed) > 0 {
			names := make([]string, 0, len(res.Failed))
			for name := range res.Failed {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(os.Stderr, "%s: part %s: %v\n", input, name, res.Failed[name])
			}
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d files had errors", failures, len(args))
	}
	return nil
}

func runTemplate(cmd *cobra.Command, args []string) error {
	output := "drum-mapping.yaml"
	if len(args) == 1 {
		output = args[0]
	}
	if err := os.WriteFile(output, []byte(mapping.DefaultDocument), 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	fmt.Printf("Template saved to %s\n", output)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	var m *mapping.Mapping
	var err error
	if len(args) == 1 {
		m, err = mapping.LoadFile(args[0])
	} else {
		m = mapping.Default()
	}
	if err != nil {
		return err
	}

	for _, part := range m.Parts {
		fmt.Printf("%s (%d notes):\n", part.Name, len(part.Notes))
		for _, n := range part.Notes {
			name, err := mapping.FormatNote(int(n))
			if err != nil {
				return err
			}
			fmt.Printf("  %3d  %s\n", n, name)
		}
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
