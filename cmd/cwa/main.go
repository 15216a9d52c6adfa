package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	envFile     string
	logLevelInt int
	noColor     bool
	// The root command of our program
	rootCmd = &cobra.Command{
		Use:   "cwa",
		Short: "Center Weather Advisory generator.",
		Long: `Composes Center Weather Advisories, Center Weather Statements and Meteorological Impact
		Statements for a Center Weather Service Unit, stores them in the text database and sends
		operational products on to distribution.`,
		SilenceUsage: true,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Bind our args to the command
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "The env file to read.")
	rootCmd.PersistentFlags().IntVar(&logLevelInt, "log", 1, "The logging level to use.")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output.")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(reissueCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() {
	zerolog.SetGlobalLevel(zerolog.Level(logLevelInt))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if noColor {
		color.NoColor = true
	}

	err := godotenv.Load(envFile)
	if err != nil {
		log.Debug().Err(err).Msg("failed to load env file")
	}
}
