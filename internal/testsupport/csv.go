package testsupport

import (
	"os"
	"strings"
	"testing"
)

// FlightCSVHeader is the exact column contract of the raw flight data source.
const FlightCSVHeader = "Year,Month,DayofMonth,DayOfWeek,Carrier,OriginAirportID,OriginAirportName,OriginCity,OriginState,DestAirportID,DestAirportName,DestCity,DestState,CRSDepTime,DepDelay,DepDel15,CRSArrTime,ArrDelay,ArrDel15,Cancelled"

// WriteCSV writes a flight data CSV with the standard header and the given
// rows to path.
func WriteCSV(t testing.TB, path string, rows ...string) {
	t.Helper()

	lines := append([]string{FlightCSVHeader}, rows...)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write csv %s: %v", path, err)
	}
}
