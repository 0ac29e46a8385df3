package sources

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/names"
	"github.com/agentstation/nightaudit/pkg/records"
)

// KBS reads the government registration spreadsheet. The workbook comes
// from a system that writes Windows-1254 text which spreadsheet tools read
// as Windows-1252, so headers and names are repaired before use.
type KBS struct{}

// ID returns KBSID.
func (*KBS) ID() ID { return KBSID }

// KBS column headers in canonical form (see names.Canonicalize).
const (
	kbsColNationalID = "TCNO"
	kbsColDocumentNo = "BELGENO"
	kbsColFirstName  = "ADI"
	kbsColLastName   = "SOYADI"
	kbsColRoom       = "ODANO"
)

// Parse implements Source.
func (s *KBS) Parse(ctx context.Context, r io.Reader) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.WrapParse("xlsx", "", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.NewShapeError(s.ID().String(), "sheet[0]").WithReason("no sheets found")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapParse("xlsx", "", fmt.Errorf("reading sheet %q: %w", sheet, err))
	}
	if len(rows) < 2 {
		return nil, errors.NewShapeError(s.ID().String(), sheet).WithReason("sheet is empty or has no data rows")
	}

	cols := kbsHeaderMap(rows[0])
	for _, required := range []string{kbsColFirstName, kbsColLastName, kbsColRoom} {
		if _, ok := cols[required]; !ok {
			return nil, errors.NewShapeError(s.ID().String(), sheet, "header").
				WithReason(fmt.Sprintf("missing column %s", required))
		}
	}

	return KBSSet{Records: normalizeKBS(rows[1:], cols)}, nil
}

// kbsHeaderMap maps canonical header names to column indexes.
func kbsHeaderMap(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := names.Canonicalize(names.RepairLegacyEncoding(h))
		if _, dup := cols[key]; key != "" && !dup {
			cols[key] = i
		}
	}
	return cols
}

// normalizeKBS builds one record per non-empty row, ordered by room.
func normalizeKBS(rows [][]string, cols map[string]int) []records.GuestRecord {
	cell := func(row []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []records.GuestRecord
	for _, row := range rows {
		first := cell(row, kbsColFirstName)
		last := cell(row, kbsColLastName)
		room := cell(row, kbsColRoom)
		if first == "" && last == "" && room == "" {
			continue
		}
		out = append(out, records.GuestRecord{
			Source:         records.SourceKBS,
			RoomNo:         room,
			FirstName:      names.CleanRegistrationName(first),
			LastName:       names.CleanRegistrationName(last),
			DocumentNumber: firstNonEmpty(cell(row, kbsColNationalID), cell(row, kbsColDocumentNo)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return records.CompareRooms(out[i].RoomNo, out[j].RoomNo) < 0
	})
	return out
}
