package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ppiankov/draftcheck/internal/profile"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// profilesCmd lists the content profiles
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List content profiles",
	Long: `List the built-in content profiles and any loaded from the profiles file
(profiles.file in the configuration).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadProfiles()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTOTAL WORDS\tSECTIONS\tDESCRIPTION")
		for _, p := range registry.All() {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", p.ID, p.TotalWords, len(p.Sections), p.Description)
		}
		return w.Flush()
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a profile as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadProfiles()
		if err != nil {
			return err
		}
		p, err := registry.Get(args[0])
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(p)
		if err != nil {
			return fmt.Errorf("error marshaling profile: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesShowCmd)
}

func loadProfiles() (*profile.Registry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	registry := profile.NewRegistry()
	if cfg.Profiles.File != "" {
		if err := registry.LoadFile(cfg.Profiles.File); err != nil {
			return nil, fmt.Errorf("load profiles: %w", err)
		}
	}
	return registry, nil
}
