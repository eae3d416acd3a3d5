// Package constants provides shared constants for the ifta-report application.
package constants

// DateLayout is the trip date format used in trip ledgers, imports, and
// report output.
const DateLayout = "2006-01-02"

// Calculation constants
const (
	// MpgPrecision is the number of decimal places fleet MPG is rounded to
	// before it is reused to derive consumed fuel.
	MpgPrecision = 4

	// CurrencyPrecision is the number of decimal places shown for money.
	CurrencyPrecision = 2

	// RatePrecision is the number of decimal places shown for tax rates.
	RatePrecision = 4

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MileageTolerance is the tolerance used when comparing odometer miles
	// against the jurisdiction breakdown.
	MileageTolerance = 0.005
)

// Jurisdiction constants
const (
	// DefaultJurisdiction is the rate table key used for unlisted jurisdictions.
	DefaultJurisdiction = "DEFAULT"

	// ImportIDPrefix prefixes the IDs of trips created by the import adapter.
	ImportIDPrefix = "IMP-"
)

// Jurisdictions lists the US jurisdiction codes shown in the spreadsheet view.
var Jurisdictions = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatSpreadsheet lists every jurisdiction, including inactive ones.
	OutputFormatSpreadsheet = "spreadsheet"

	// OutputFormatPDF is the printable worksheet format
	OutputFormatPDF = "pdf"
)

// OutputFormats lists every supported output format.
var OutputFormats = []string{
	OutputFormatPretty,
	OutputFormatCSV,
	OutputFormatSpreadsheet,
	OutputFormatPDF,
}

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultPDFFile is written when the pdf format is selected without an
	// explicit output file.
	DefaultPDFFile = "ifta-report.pdf"

	// EnvPrefix prefixes environment overrides, e.g. IFTA_ADVISORY_API_KEY.
	EnvPrefix = "IFTA"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultAdvisoryRequestsPerMinute bounds calls to the advisory endpoint.
	DefaultAdvisoryRequestsPerMinute = 6

	// DefaultAdvisoryBurst is the burst allowance for the advisory endpoint.
	DefaultAdvisoryBurst = 2
)

// Advisory defaults
const (
	// DefaultAdvisoryEndpoint is the base URL of the generative model API.
	DefaultAdvisoryEndpoint = "https://generativelanguage.googleapis.com/"

	// AdvisoryAPIVersion is the model API version requests are sent to.
	AdvisoryAPIVersion = "v1beta"

	// DefaultAdvisoryModel is the model asked for audit-risk commentary.
	DefaultAdvisoryModel = "gemini-3-flash-preview"

	// DefaultAdvisoryTimeoutSeconds bounds a single advisory attempt.
	DefaultAdvisoryTimeoutSeconds = 30

	// DefaultAdvisoryMaxRetries is the number of retries after the first attempt.
	DefaultAdvisoryMaxRetries = 2
)
