package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/iwvelando/ifta-report/internal/config"
	"github.com/iwvelando/ifta-report/internal/importer"
	"github.com/iwvelando/ifta-report/internal/store"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/iwvelando/ifta-report/pkg/output"
	"github.com/iwvelando/ifta-report/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, spreadsheet, pdf")
	outputFileFlag := flag.String("output-file", "", "write the report to this file instead of stdout")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	importSample := flag.Bool("import-sample", false, "add the sample mileage and fuel report to the ledger")
	truckID := flag.String("truck", importer.DefaultTruckID, "truck identifier for -import-sample")
	flag.Parse()

	envErr := godotenv.Load()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("failed to load .env file",
			zap.String("op", "main"),
			zap.Error(envErr),
		)
	}
	logger.Debug("configuration loaded",
		zap.String("op", "main"),
		zap.String("config", conf.Dump()),
	)

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	outputFile := conf.Output.File
	if *outputFileFlag != "" {
		outputFile = *outputFileFlag
	}
	if outputFile == "" && outputFormat == constants.OutputFormatPDF {
		outputFile = constants.DefaultPDFFile
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	rates := conf.RateTable()
	ledger := store.New(logger)
	ledger.AppendAll(conf.LedgerTrips())

	if *importSample {
		trip, err := importer.New(logger).BuildTrip(*truckID, importer.SampleMileage(), importer.SampleFuel())
		if err != nil {
			logger.Fatal("failed to import sample report",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		for _, warning := range config.TripWarnings(trip) {
			logger.Warn("Import warning: "+warning,
				zap.String("op", "main"),
			)
		}
		ledger.Append(trip)
	}

	trips := ledger.Trips()
	report := ledger.Report(rates)
	meta := output.NewMeta(trips, time.Now())

	if outputFile != "" {
		err = output.WriteFile(outputFile, outputFormat, report, meta)
	} else {
		err = output.Write(os.Stdout, outputFormat, report, meta)
	}
	if err != nil {
		logger.Fatal("failed to write report",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.String("file", outputFile),
			zap.Error(err),
		)
	}

	logger.Info("report complete",
		zap.String("op", "main"),
		zap.Int("trips", len(trips)),
		zap.Int("jurisdictions", len(report.Rows)),
		zap.Float64("estimated_tax", report.Summary.EstimatedTax),
		zap.String("format", outputFormat),
		zap.String("file", outputFile),
	)
}
