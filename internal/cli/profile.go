package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sago-ai/sago/internal/model"
)

var profileFile string

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the investor profile",
	Long: `Manage the investor profile used to personalize founder questions.

A profile is a YAML file with name, focus_areas, investment_stage, and an
optional portfolio list. Pass it to analyze with --profile.`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective investor profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := model.DefaultProfile()
		if profileFile != "" {
			loaded, err := model.LoadProfile(profileFile)
			if err != nil {
				return err
			}
			profile = loaded
		}

		data, err := yaml.Marshal(profile)
		if err != nil {
			return fmt.Errorf("error marshaling profile: %w", err)
		}

		fmt.Print(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileShowCmd.Flags().StringVar(&profileFile, "profile", "", "investor profile YAML file")
}
