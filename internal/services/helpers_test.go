package services

import (
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/files/filesystem"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/logging"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/store/memory"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

const (
	placesPath  = "data/places.csv"
	peoplePath  = "data/people.csv"
	summaryPath = "output/summary_output.json"
)

const ukPlaces = `city,county,country
London,Greater London,UK
Manchester,Greater Manchester,UK
`

const ukPeople = `given_name,family_name,date_of_birth,place_of_birth
Ann,Archer,1990-01-01,London
Bob,Baker,1985-06-30,Manchester
`

type fixture struct {
	store    *memory.Store
	fs       *filesystem.MemoryFileSystem
	loader   *LoadService
	reporter *ReportService
}

func newFixture(places, people string) *fixture {
	st := memory.New()
	fs := filesystem.NewMemoryFileSystem()
	if places != "" {
		fs.AddFile(placesPath, places)
	}
	if people != "" {
		fs.AddFile(peoplePath, people)
	}
	logger := logging.NewNullLogger()
	return &fixture{
		store:    st,
		fs:       fs,
		loader:   NewLoadService(st.Opener(), fs, logger),
		reporter: NewReportService(st.Opener(), fs, logger),
	}
}

func loadConfig() codetest.LoadConfig {
	return codetest.LoadConfig{
		PlacesPath: placesPath,
		PeoplePath: peoplePath,
		Delimiter:  ',',
		Connection: &codetest.ConnectionConfig{},
	}
}

func reportConfig() codetest.ReportConfig {
	return codetest.ReportConfig{
		OutputPath: summaryPath,
		Connection: &codetest.ConnectionConfig{},
	}
}
