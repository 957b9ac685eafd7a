// Package csvlog encodes and decodes the logbook's fixed-column CSV
// dialect: 17 columns, comma-delimited, mandatory header row, dates as
// yyyy-MM-dd and times as HH:mm in a caller-supplied timezone.
//
// The dialect is asymmetric on purpose. Encoding wraps a handful of
// free-text columns in double quotes when they contain a comma; decoding
// splits rows on raw commas with no quote awareness, so such a file does
// not survive a round trip. The asymmetry matches the files already in
// circulation and is kept rather than fixed.
package csvlog

import (
	"strconv"
	"strings"
	"time"

	"github.com/shadowmov/easyqso/backend/internal/domain"
	"github.com/shadowmov/easyqso/backend/internal/tz"
)

// Header is the mandatory first row, defining the fixed column order.
const Header = "Callsign,Date,Time,Band,Mode,Frequency,RX_Frequency,TX_Power,RST_Sent,RST_Received,Name,QTH,Grid_Square,CQ_Zone,ITU_Zone,Satellite,Remarks"

// Column indexes into a decoded row.
const (
	colCallsign = iota
	colDate
	colTime
	colBand
	colMode
	colFrequency
	colRxFrequency
	colTxPower
	colRSTSent
	colRSTReceived
	colName
	colQTH
	colGridSquare
	colCQZone
	colITUZone
	colSatellite
	colRemarks
)

// minColumns is the shortest usable row: callsign through mode.
const minColumns = 5

// Encode serializes records under the given export timezone. Free-text
// columns that contain a literal comma are wrapped in double quotes;
// embedded quotes are not escaped, an accepted limitation of the dialect.
func Encode(records []domain.QSO, loc *time.Location) []byte {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')

	for _, r := range records {
		date, tod := tz.FormatCSV(r.Time, loc)
		row := []string{
			r.Callsign,
			date,
			tod,
			r.Band,
			r.Mode,
			formatFreq(r.Frequency),
			formatFreq(r.RxFrequency),
			quoteIfComma(r.TxPower),
			r.RSTSent,
			r.RSTReceived,
			quoteIfComma(r.Name),
			quoteIfComma(r.QTH),
			quoteIfComma(r.GridSquare),
			r.CQZone,
			r.ITUZone,
			quoteIfComma(r.Satellite),
			quoteIfComma(r.Remarks),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// formatFreq renders a frequency in MHz at kHz precision, or empty when the
// record carries no frequency.
func formatFreq(mhz float64) string {
	if mhz <= 0 {
		return ""
	}
	return strconv.FormatFloat(mhz, 'f', 3, 64)
}

func quoteIfComma(s string) string {
	if strings.Contains(s, ",") {
		return `"` + s + `"`
	}
	return s
}

// Decode parses a CSV document under the given import timezone. The header
// row is mandatory: a document without at least one row below it is
// rejected whole with domain.ErrMalformedFile. Empty rows and rows shorter
// than five columns are skipped. Columns beyond Mode are optional — a short
// row leaves the trailing fields at their defaults.
func Decode(doc string, loc *time.Location) ([]domain.QSO, error) {
	rows := strings.Split(doc, "\n")
	if len(rows) <= 1 {
		return nil, domain.ErrMalformedFile
	}

	var records []domain.QSO
	for _, row := range rows[1:] {
		row = strings.TrimRight(row, "\r")
		if row == "" {
			continue
		}
		// No quote-aware splitting: a value containing a literal comma
		// shifts the columns after it.
		fields := strings.Split(row, ",")
		if len(fields) < minColumns {
			continue
		}
		records = append(records, decodeRow(fields, loc))
	}
	return records, nil
}

func decodeRow(fields []string, loc *time.Location) domain.QSO {
	r := domain.QSO{
		Callsign:    fields[colCallsign],
		Time:        tz.ParseCSV(fields[colDate], fields[colTime], loc),
		Band:        fields[colBand],
		Mode:        fields[colMode],
		RSTSent:     domain.DefaultRST,
		RSTReceived: domain.DefaultRST,
	}

	if v, ok := column(fields, colFrequency); ok && v != "" {
		r.Frequency = parseFreq(v)
	}
	if v, ok := column(fields, colRxFrequency); ok && v != "" {
		r.RxFrequency = parseFreq(v)
	}
	if v, ok := column(fields, colTxPower); ok {
		r.TxPower = v
	}
	if v, ok := column(fields, colRSTSent); ok {
		r.RSTSent = v
	}
	if v, ok := column(fields, colRSTReceived); ok {
		r.RSTReceived = v
	}
	if v, ok := column(fields, colName); ok {
		r.Name = v
	}
	if v, ok := column(fields, colQTH); ok {
		r.QTH = v
	}
	if v, ok := column(fields, colGridSquare); ok {
		r.GridSquare = v
	}
	if v, ok := column(fields, colCQZone); ok {
		r.CQZone = v
	}
	if v, ok := column(fields, colITUZone); ok {
		r.ITUZone = v
	}
	if v, ok := column(fields, colSatellite); ok {
		r.Satellite = v
	}
	if v, ok := column(fields, colRemarks); ok {
		r.Remarks = v
	}
	return r
}

func column(fields []string, i int) (string, bool) {
	if i < len(fields) {
		return fields[i], true
	}
	return "", false
}

// parseFreq mirrors the numeric recovery rule: unparsable decimals become
// 0, the "no frequency recorded" sentinel.
func parseFreq(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
