package adif_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowmov/easyqso/backend/internal/adif"
	"github.com/shadowmov/easyqso/backend/internal/domain"
)

func sampleQSO() domain.QSO {
	return domain.QSO{
		Callsign:    "DL1ABC",
		Time:        time.Date(2025, 7, 12, 14, 30, 0, 0, time.UTC),
		Band:        "20m",
		Mode:        "SSB",
		Frequency:   14.250,
		RSTSent:     "59",
		RSTReceived: "57",
		Name:        "Hans",
		QTH:         "Berlin",
		GridSquare:  "JO62qm",
	}
}

func TestEncode_Header(t *testing.T) {
	out := string(adif.Encode(nil))

	assert.Equal(t, "<ADIF_VERS:5>3.1.0<EOH>\n", out)
}

func TestEncode_Record(t *testing.T) {
	out := string(adif.Encode([]domain.QSO{sampleQSO()}))

	assert.Contains(t, out, "<CALL:6>DL1ABC")
	assert.Contains(t, out, "<QSO_DATE:8>20250712")
	assert.Contains(t, out, "<TIME_ON:4>1430")
	assert.Contains(t, out, "<BAND:3>20m")
	assert.Contains(t, out, "<MODE:3>SSB")
	assert.Contains(t, out, "<FREQ:6>14.250")
	assert.Contains(t, out, "<RST_SENT:2>59")
	assert.Contains(t, out, "<RST_RCVD:2>57")
	assert.Contains(t, out, "<NAME:4>Hans")
	assert.Contains(t, out, "<QTH:6>Berlin")
	assert.Contains(t, out, "<GRIDSQUARE:6>JO62qm")
	assert.True(t, strings.HasSuffix(out, "<EOR>\n"))
}

func TestEncode_OmitsEmptyOptionalFields(t *testing.T) {
	q := sampleQSO()
	q.Name = ""
	q.Satellite = ""
	q.RxFrequency = 0

	out := string(adif.Encode([]domain.QSO{q}))

	assert.NotContains(t, out, "<NAME")
	assert.NotContains(t, out, "<SAT_NAME")
	assert.NotContains(t, out, "<FREQ_RX")
}

func TestEncode_RuneCountLengths(t *testing.T) {
	q := sampleQSO()
	q.Name = "Jürgen" // 6 runes, 7 bytes

	out := string(adif.Encode([]domain.QSO{q}))

	assert.Contains(t, out, "<NAME:6>Jürgen")
}

func TestEncode_TimesAlwaysUTC(t *testing.T) {
	q := sampleQSO()
	q.Time = time.Date(2025, 7, 12, 16, 30, 0, 0, time.FixedZone("UTC+2", 2*3600))

	out := string(adif.Encode([]domain.QSO{q}))

	assert.Contains(t, out, "<QSO_DATE:8>20250712")
	assert.Contains(t, out, "<TIME_ON:4>1430")
}

func TestDecode_RoundTrip(t *testing.T) {
	want := sampleQSO()

	got := adif.Decode(string(adif.Encode([]domain.QSO{want})))

	require.Len(t, got, 1)
	assert.Equal(t, want.Callsign, got[0].Callsign)
	assert.Equal(t, want.Band, got[0].Band)
	assert.Equal(t, want.Mode, got[0].Mode)
	assert.InDelta(t, want.Frequency, got[0].Frequency, 0.001)
	assert.True(t, got[0].Time.Equal(want.Time), "got %v, want %v", got[0].Time, want.Time)
	assert.Equal(t, want.Name, got[0].Name)
	assert.Equal(t, want.GridSquare, got[0].GridSquare)
}

func TestDecode_MissingHeader(t *testing.T) {
	doc := "<CALL:6>DL1ABC<QSO_DATE:8>20250712<TIME_ON:4>1430<EOR>"

	got := adif.Decode(doc)

	require.Len(t, got, 1)
	assert.Equal(t, "DL1ABC", got[0].Callsign)
}

func TestDecode_CaseInsensitiveTerminators(t *testing.T) {
	doc := "<ADIF_VERS:5>3.1.0<eoh>\n<CALL:6>DL1ABC<eor>\n<CALL:6>OE3XYZ<eOr>\n"

	got := adif.Decode(doc)

	require.Len(t, got, 2)
	assert.Equal(t, "DL1ABC", got[0].Callsign)
	assert.Equal(t, "OE3XYZ", got[1].Callsign)
}

func TestDecode_NoEORSplitsOnLines(t *testing.T) {
	doc := "<CALL:6>DL1ABC<QSO_DATE:8>20250712\n<CALL:6>OE3XYZ<QSO_DATE:8>20250713\n"

	got := adif.Decode(doc)

	require.Len(t, got, 2)
	assert.Equal(t, "DL1ABC", got[0].Callsign)
	assert.Equal(t, "OE3XYZ", got[1].Callsign)
}

func TestDecode_SkipsChunksWithoutCall(t *testing.T) {
	doc := "<ADIF_VERS:5>3.1.0<EOH>\n" +
		"some stray comment line<EOR>\n" +
		"<CALL:6>DL1ABC<EOR>\n" +
		"<BAND:3>40m<EOR>\n"

	got := adif.Decode(doc)

	require.Len(t, got, 1)
	assert.Equal(t, "DL1ABC", got[0].Callsign)
}

func TestDecode_AppliesDefaults(t *testing.T) {
	doc := "<CALL:6>DL1ABC<EOR>"

	got := adif.Decode(doc)

	require.Len(t, got, 1)
	assert.Equal(t, domain.DefaultBand, got[0].Band)
	assert.Equal(t, domain.DefaultMode, got[0].Mode)
	assert.Equal(t, domain.DefaultRST, got[0].RSTSent)
	assert.Equal(t, domain.DefaultRST, got[0].RSTReceived)
}

// TestDecode_UntrustedLengths verifies that a wrong declared length does not
// truncate or overrun the value: the value always runs to the next '<'.
func TestDecode_UntrustedLengths(t *testing.T) {
	doc := "<CALL:2>DL1ABC<NAME:99>Hans<EOR>"

	got := adif.Decode(doc)

	require.Len(t, got, 1)
	assert.Equal(t, "DL1ABC", got[0].Callsign)
	assert.Equal(t, "Hans", got[0].Name)
}

func TestDecode_UnparsableFrequencyIsZero(t *testing.T) {
	doc := "<CALL:6>DL1ABC<FREQ:4>abcd<EOR>"

	got := adif.Decode(doc)

	require.Len(t, got, 1)
	assert.Zero(t, got[0].Frequency)
}

func TestDecode_Empty(t *testing.T) {
	assert.Empty(t, adif.Decode(""))
	assert.Empty(t, adif.Decode("<ADIF_VERS:5>3.1.0<EOH>\n"))
}
