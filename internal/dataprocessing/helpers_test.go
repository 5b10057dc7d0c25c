package dataprocessing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bikeshare/pkg/contracts/domain"
)

// chicagoCSV mimics the published layout: unnamed index column, BOM, all
// optional columns present.
const chicagoCSV = "\uFEFF,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year\n" +
	"1423854,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0\n" +
	"955915,2017-05-25 18:19:03,2017-05-25 18:45:53,1610,Theater on the Lake,Sheffield Ave & Waveland Ave,Subscriber,Female,1992.0\n" +
	"9031,2017-01-04 08:27:49,2017-01-04 08:34:45,416,May St & Taylor St,Wood St & Taylor St,Subscriber,Male,1981.0\n" +
	"304487,2017-03-06 13:49:38,2017-03-06 13:55:28,350,Christiana Ave & Lawrence Ave,St. Louis Ave & Balmoral Ave,Subscriber,Male,1986.0\n" +
	"45207,2017-01-17 14:53:07,2017-01-17 15:02:03,534,Clark St & Randolph St,Desplaines St & Jackson Blvd,Customer,,\n" +
	"1473887,2017-06-26 09:01:20,2017-06-26 09:11:06,586,Clinton St & Washington Blvd,Canal St & Taylor St,Subscriber,Male,1990.0\n"

// washingtonCSV has no Gender or Birth Year columns
const washingtonCSV = ",Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n" +
	"1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber\n" +
	"482740,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Subscriber\n" +
	"1330037,2017-05-30 01:02:59,2017-05-30 01:13:37,637.251,17th St & Massachusetts Ave NW,5th & K St NW,Subscriber\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mustParseCSV(t *testing.T, content string) *RecordStore {
	t.Helper()
	store, err := ParseCSV(strings.NewReader(content), "test.csv")
	require.NoError(t, err)
	return store
}

// trip describes one synthetic record for buildCSV
type trip struct {
	start     string
	from, to  string
	duration  float64
	userType  string
	gender    string
	birthYear string
}

// buildCSV renders trips with every column present
func buildCSV(trips ...trip) string {
	var b strings.Builder
	b.WriteString("Start Time,Start Station,End Station,Trip Duration,User Type,Gender,Birth Year\n")
	for _, tr := range trips {
		start := tr.start
		if start == "" {
			start = "2017-01-02 08:00:00"
		}
		userType := tr.userType
		if userType == "" {
			userType = "Subscriber"
		}
		fmt.Fprintf(&b, "%s,%s,%s,%g,%s,%s,%s\n",
			start, tr.from, tr.to, tr.duration, userType, tr.gender, tr.birthYear)
	}
	return b.String()
}

// storeOf builds a store directly from records, bypassing parsing
func storeOf(caps domain.Capabilities, records ...domain.TripRecord) *RecordStore {
	for i := range records {
		records[i].Row = i
	}
	return &RecordStore{region: "test", source: "memory", records: records, caps: caps}
}

func recordAt(t *testing.T, start string) domain.TripRecord {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", start)
	require.NoError(t, err)
	return domain.NewTripRecord(0, ts)
}
