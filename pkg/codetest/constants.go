package codetest

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Job completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitInputError      = 12 // Input file missing or unreadable
	ExitInvalidInput    = 13 // Input file content cannot be loaded
	ExitStoreWriteError = 14 // Insert or commit failed
	ExitQueryError      = 15 // Summary query failed
	ExitOutputError     = 16 // Summary file could not be written
)

// Defaults match the data/ and output/ layout of the container deployment.
const (
	DefaultPlacesFile  = "data/places.csv"
	DefaultPeopleFile  = "data/people.csv"
	DefaultSummaryFile = "output/summary_output.json"
	DefaultDelimiter   = ','

	DefaultHost     = "localhost"
	DefaultPort     = 5432
	DefaultDatabase = "codetest"
	DefaultSSLMode  = "prefer"
	DefaultAppName  = "codetest"
)

// Table and column names of the two persisted entities.
const (
	PlacesTable = "places"
	PeopleTable = "people"

	ColumnCity    = "city"
	ColumnCounty  = "county"
	ColumnCountry = "country"

	ColumnGivenName    = "given_name"
	ColumnFamilyName   = "family_name"
	ColumnDateOfBirth  = "date_of_birth"
	ColumnPlaceOfBirth = "place_of_birth"
)

// PlaceColumns lists the header columns a places file must carry.
var PlaceColumns = []string{ColumnCity, ColumnCounty, ColumnCountry}

// PersonColumns lists the header columns a people file must carry.
var PersonColumns = []string{ColumnGivenName, ColumnFamilyName, ColumnDateOfBirth, ColumnPlaceOfBirth}
