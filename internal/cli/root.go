package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	log     = logrus.New()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sago",
	Short: "Sago - Pitch deck claim verification for investors",
	Long: `Sago analyzes startup pitch decks before investor meetings.

It extracts the factual claims a deck makes (market size, revenue,
growth, team background, customers, partnerships, funding), checks
each one against public web sources, and scores how well the deck's
story holds up.

The output is a verification report plus a prioritized list of
questions to ask the founders, personalized to the investor's focus.

Sago flags what it could not confirm. It does not decide whether to
invest.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Sago.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sago v0.2.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.sago/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	// Local .env first so API keys can live next to the deck
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.sago")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match SAGO_*
	viper.SetEnvPrefix("SAGO")
	viper.AutomaticEnv()

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
