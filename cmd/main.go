package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	awsapi "github.com/hoominkani/aws-accounts-to-csv/pkg/aws"
	"github.com/hoominkani/aws-accounts-to-csv/pkg/db"
	"github.com/hoominkani/aws-accounts-to-csv/pkg/inventory"
	"github.com/hoominkani/aws-accounts-to-csv/pkg/report"
)

type config struct {
	OutputDir  string `envconfig:"OUTPUT_DIR" default:"./output"`
	SQLiteFile string `envconfig:"SQLITE_FILE" default:"./database.db"`
	ExportDir  string `envconfig:"EXPORT_DIR" default:"./export"`
}

func main() {
	var cfg config
	if err := envconfig.Process("inventory", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to read environment configuration")
	}

	var debug bool
	binaryName := filepath.Base(os.Args[0])
	rootCmd := &cobra.Command{
		Use: binaryName,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
				Level(level).With().Timestamp().Logger()
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	cmdCSV := &cobra.Command{
		Use:   "csv",
		Short: "Export the organization's accounts with OU paths to CSV",
		Run: func(cmd *cobra.Command, args []string) {
			outputDir, _ := cmd.Flags().GetString("outputDir")

			ctx := context.Background()
			clients, err := awsapi.NewClients(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize AWS clients")
			}

			now := time.Now()
			rows, err := inventory.AccountsByOU(ctx, clients.Org)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to list accounts")
			}

			if err := os.MkdirAll(outputDir, 0755); err != nil {
				log.Fatal().Err(err).Msg("failed to create output directory")
			}
			path := report.AccountsCSVPath(outputDir, now)
			file, err := os.Create(path)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create CSV file")
			}
			defer file.Close()
			if err := report.WriteAccountsCSV(file, rows); err != nil {
				log.Fatal().Err(err).Msg("failed to write CSV")
			}
			log.Info().Str("file", path).Int("accounts", len(rows)).Msg("accounts CSV written")
		},
	}
	cmdCSV.Flags().StringP("outputDir", "", cfg.OutputDir, "Directory where the CSV file is written")

	cmdReport := &cobra.Command{
		Use:   "report",
		Short: "Generate an IAM Identity Center inventory report",
		Run: func(cmd *cobra.Command, args []string) {
			outputDir, _ := cmd.Flags().GetString("outputDir")

			ctx := context.Background()
			clients, err := awsapi.NewClients(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize AWS clients")
			}

			snap, err := inventory.Build(ctx, inventoryClients(clients))
			if err != nil {
				log.Fatal().Err(err).Msg("failed to build inventory")
			}
			rendered, err := report.RenderMarkdown(snap)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to render report")
			}

			if err := os.MkdirAll(outputDir, 0755); err != nil {
				log.Fatal().Err(err).Msg("failed to create output directory")
			}
			path := report.InventoryReportPath(outputDir, snap.RetrievedAt)
			if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
				log.Fatal().Err(err).Msg("failed to write report")
			}
			log.Info().Str("file", path).Msg("inventory report written")
		},
	}
	cmdReport.Flags().StringP("outputDir", "", cfg.OutputDir, "Directory where the report is written")

	cmdDump := &cobra.Command{
		Use:   "dump",
		Short: "Dump the inventory snapshot into a SQLite database",
		Run: func(cmd *cobra.Command, args []string) {
			sqliteFile, _ := cmd.Flags().GetString("sqliteFile")

			ctx := context.Background()
			clients, err := awsapi.NewClients(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize AWS clients")
			}

			snap, err := inventory.Build(ctx, inventoryClients(clients))
			if err != nil {
				log.Fatal().Err(err).Msg("failed to build inventory")
			}
			ouPaths, err := inventory.OUPathsFromRoot(ctx, clients.Org)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to build OU paths")
			}

			database, err := db.Open(sqliteFile)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize database")
			}
			defer database.Close()
			if err := db.InsertSnapshot(database, snap, ouPaths); err != nil {
				log.Fatal().Err(err).Msg("failed to insert snapshot")
			}
			log.Info().Str("file", sqliteFile).Msg("snapshot written")
		},
	}
	cmdDump.Flags().StringP("sqliteFile", "", cfg.SQLiteFile, "Path to the SQLite snapshot file")

	cmdExport := &cobra.Command{
		Use:   "export",
		Short: "Export the SQLite snapshot to CSV files",
		Run: func(cmd *cobra.Command, args []string) {
			sqliteFile, _ := cmd.Flags().GetString("sqliteFile")
			exportDir, _ := cmd.Flags().GetString("exportDir")
			if err := db.ExportTables(sqliteFile, exportDir); err != nil {
				log.Fatal().Err(err).Msg("failed to export tables to CSV files")
			}
		},
	}
	cmdExport.Flags().StringP("sqliteFile", "", cfg.SQLiteFile, "Path to the SQLite snapshot file")
	cmdExport.Flags().StringP("exportDir", "", cfg.ExportDir, "Directory used to dump CSV exports")

	cmdUpload := &cobra.Command{
		Use:   "upload",
		Short: "Upload files to S3",
		Run: func(cmd *cobra.Command, args []string) {
			srcPath, _ := cmd.Flags().GetString("srcPath")
			bucketName, _ := cmd.Flags().GetString("bucketName")

			ctx := context.Background()
			clients, err := awsapi.NewClients(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize AWS clients")
			}
			if err := awsapi.UploadFiles(ctx, clients.S3, bucketName, srcPath); err != nil {
				log.Fatal().Err(err).Msg("failed to upload files to S3")
			}
		},
	}
	cmdUpload.Flags().StringP("bucketName", "", "", "S3 bucket name where files are uploaded")
	cmdUpload.Flags().StringP("srcPath", "", cfg.ExportDir, "Path to upload, can be a file or a directory (non-recursive)")
	cmdUpload.MarkFlagRequired("bucketName")

	rootCmd.AddCommand(cmdCSV, cmdReport, cmdDump, cmdExport, cmdUpload)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func inventoryClients(c *awsapi.Clients) inventory.Clients {
	return inventory.Clients{Org: c.Org, Store: c.Store, SSO: c.SSO, STS: c.STS}
}
