// Package adif encodes and decodes the ADIF (Amateur Data Interchange
// Format) tag-length-value text format, covering the fixed field subset the
// logbook stores. It is not a general ADIF library.
//
// Decoding is deliberately tolerant: real-world files miss headers, vary
// tag case on record terminators, and declare wrong value lengths. The
// decoder never trusts a declared length — a value runs to the next '<'.
package adif

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shadowmov/easyqso/backend/internal/domain"
	"github.com/shadowmov/easyqso/backend/internal/tz"
)

// Tag names of the supported field subset.
const (
	tagCall       = "CALL"
	tagQSODate    = "QSO_DATE"
	tagTimeOn     = "TIME_ON"
	tagBand       = "BAND"
	tagMode       = "MODE"
	tagFreq       = "FREQ"
	tagFreqRx     = "FREQ_RX"
	tagTxPwr      = "TX_PWR"
	tagRSTSent    = "RST_SENT"
	tagRSTRcvd    = "RST_RCVD"
	tagName       = "NAME"
	tagQTH        = "QTH"
	tagGridSquare = "GRIDSQUARE"
	tagCQZone     = "CQZ"
	tagITUZone    = "ITUZ"
	tagSatName    = "SAT_NAME"
	tagComment    = "COMMENT"
)

var (
	eohPattern = regexp.MustCompile(`(?i)<EOH>`)
	eorPattern = regexp.MustCompile(`(?i)<EOR>`)
)

// Encode serializes records to an ADIF document: a one-line header with the
// ADIF version, then one line of concatenated <TAG:len>value pairs per
// record, each terminated by <EOR>. Optional fields are omitted entirely
// when absent, never emitted as empty tags. All date/time values are UTC.
func Encode(records []domain.QSO) []byte {
	var b strings.Builder
	writeField(&b, "ADIF_VERS", domain.ADIFVersion)
	b.WriteString("<EOH>\n")

	for _, r := range records {
		date, tod := tz.FormatADIF(r.Time)
		writeField(&b, tagCall, r.Callsign)
		writeField(&b, tagQSODate, date)
		writeField(&b, tagTimeOn, tod)
		writeField(&b, tagBand, r.Band)
		writeField(&b, tagMode, r.Mode)
		if r.Frequency > 0 {
			writeField(&b, tagFreq, formatFreq(r.Frequency))
		}
		if r.RxFrequency > 0 {
			writeField(&b, tagFreqRx, formatFreq(r.RxFrequency))
		}
		writeOptional(&b, tagTxPwr, r.TxPower)
		writeField(&b, tagRSTSent, r.RSTSent)
		writeField(&b, tagRSTRcvd, r.RSTReceived)
		writeOptional(&b, tagName, r.Name)
		writeOptional(&b, tagQTH, r.QTH)
		writeOptional(&b, tagGridSquare, r.GridSquare)
		writeOptional(&b, tagCQZone, r.CQZone)
		writeOptional(&b, tagITUZone, r.ITUZone)
		writeOptional(&b, tagSatName, r.Satellite)
		writeOptional(&b, tagComment, r.Remarks)
		b.WriteString("<EOR>\n")
	}
	return []byte(b.String())
}

// writeField emits <TAG:len>value. The length prefix is the value's rune
// count, so multi-byte names and remarks keep the count the original
// logger wrote.
func writeField(b *strings.Builder, tag, value string) {
	fmt.Fprintf(b, "<%s:%d>%s", tag, utf8.RuneCountInString(value), value)
}

// writeOptional emits the field only when the value is non-empty.
func writeOptional(b *strings.Builder, tag, value string) {
	if value != "" {
		writeField(b, tag, value)
	}
}

func formatFreq(mhz float64) string {
	return strconv.FormatFloat(mhz, 'f', 3, 64)
}

// Decode parses an ADIF document into QSO record candidates.
//
// The header is everything up to the first <EOH> (case-insensitive); a
// document without one is treated as all body. The body splits into record
// chunks on <EOR>; with no <EOR> anywhere it falls back to one record per
// line, which salvages some malformed exports. Chunks without a <CALL: tag
// are noise, not errors. Missing required fields take the standard
// defaults, and unparsable dates recover through the UTC→local→now chain.
func Decode(doc string) []domain.QSO {
	body := doc
	if loc := eohPattern.FindStringIndex(doc); loc != nil {
		body = doc[loc[1]:]
	}

	var chunks []string
	if eorPattern.MatchString(body) {
		chunks = eorPattern.Split(body, -1)
	} else {
		chunks = strings.Split(body, "\n")
	}

	var records []domain.QSO
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" || !strings.Contains(chunk, "<"+tagCall+":") {
			continue
		}
		if r, ok := decodeRecord(chunk); ok {
			records = append(records, r)
		}
	}
	return records
}

// decodeRecord maps one record chunk to a QSO. A chunk whose CALL tag does
// not yield a value is skipped entirely; CALL is the only field whose
// absence discards the record.
func decodeRecord(chunk string) (domain.QSO, bool) {
	call, ok := extractField(chunk, tagCall)
	if !ok {
		return domain.QSO{}, false
	}

	r := domain.QSO{
		Callsign:    call,
		Band:        fieldOr(chunk, tagBand, domain.DefaultBand),
		Mode:        fieldOr(chunk, tagMode, domain.DefaultMode),
		RSTSent:     fieldOr(chunk, tagRSTSent, domain.DefaultRST),
		RSTReceived: fieldOr(chunk, tagRSTRcvd, domain.DefaultRST),
	}

	date, _ := extractField(chunk, tagQSODate)
	tod, _ := extractField(chunk, tagTimeOn)
	r.Time = tz.ParseADIF(date, tod)

	r.Frequency = freqField(chunk, tagFreq)
	r.RxFrequency = freqField(chunk, tagFreqRx)

	r.TxPower, _ = extractField(chunk, tagTxPwr)
	r.Name, _ = extractField(chunk, tagName)
	r.QTH, _ = extractField(chunk, tagQTH)
	r.GridSquare, _ = extractField(chunk, tagGridSquare)
	r.CQZone, _ = extractField(chunk, tagCQZone)
	r.ITUZone, _ = extractField(chunk, tagITUZone)
	r.Satellite, _ = extractField(chunk, tagSatName)
	r.Remarks, _ = extractField(chunk, tagComment)
	return r, true
}

// fieldPatterns holds one extraction regexp per supported tag, compiled
// once at startup; the tag set is a small fixed vocabulary.
var fieldPatterns = func() map[string]*regexp.Regexp {
	tags := []string{
		tagCall, tagQSODate, tagTimeOn, tagBand, tagMode, tagFreq, tagFreqRx,
		tagTxPwr, tagRSTSent, tagRSTRcvd, tagName, tagQTH, tagGridSquare,
		tagCQZone, tagITUZone, tagSatName, tagComment,
	}
	m := make(map[string]*regexp.Regexp, len(tags))
	for _, tag := range tags {
		m[tag] = regexp.MustCompile(`<` + tag + `:(\d+)>([^<]*)`)
	}
	return m
}()

// extractField pulls the value of the first <tag:len> occurrence in the
// chunk. The declared length is captured but not trusted; the value is
// whatever sits between '>' and the next '<'. Field extraction is
// independent per tag, so a missing optional tag just reports ok=false.
func extractField(chunk, tag string) (string, bool) {
	m := fieldPatterns[tag].FindStringSubmatch(chunk)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// fieldOr returns the extracted field value, or def when the tag is absent.
func fieldOr(chunk, tag, def string) string {
	if v, ok := extractField(chunk, tag); ok {
		return v
	}
	return def
}

// freqField parses a decimal MHz field; absent or unparsable values are 0,
// the "no frequency recorded" sentinel.
func freqField(chunk, tag string) float64 {
	v, ok := extractField(chunk, tag)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
