package sources

import (
	"context"
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/names"
	"github.com/agentstation/nightaudit/pkg/records"
)

// Police reads the police report (P2203_POLISRAPORU), the government report
// that carries identity documents.
type Police struct{}

// ID returns PoliceID.
func (*Police) ID() ID { return PoliceID }

type policeDoc struct {
	XMLName xml.Name
	Guests  []policeGuest `xml:"LIST_G_VERILENODANO>G_VERILENODANO"`
}

type policeGuest struct {
	Room         string `xml:"VERILENODANO"`
	FirstName    string `xml:"ADI"`
	LastName     string `xml:"SOYADI"`
	DocumentNo   string `xml:"KIMLIKSERINO"`
	BirthDate    string `xml:"DOGUMTARIHI"`
	Nationality  string `xml:"UYRUGU"`
	DocumentType string `xml:"KIMLIKBELGESITURU"`
	Residence    string `xml:"IKAMETADRESI"`
	Arrival      string `xml:"GELISTARIHI"`
	Departure    string `xml:"AYRILISTARIHI"`
}

// Parse implements Source.
func (s *Police) Parse(ctx context.Context, r io.Reader) (Dataset, error) {
	var doc policeDoc
	if err := decodeXML(ctx, r, &doc); err != nil {
		return nil, err
	}
	if err := checkRoot(s.ID(), doc.XMLName, "P2203_POLISRAPORU"); err != nil {
		return nil, err
	}
	if len(doc.Guests) == 0 {
		return nil, errors.NewShapeError(s.ID().String(), "P2203_POLISRAPORU", "LIST_G_VERILENODANO", "G_VERILENODANO").
			WithReason("no guests found")
	}
	return PoliceSet{Records: normalizePolice(doc.Guests)}, nil
}

// normalizePolice keeps checked-in stays (arrival and departure present and
// different) and maps them onto guest records.
func normalizePolice(guests []policeGuest) []records.GuestRecord {
	var out []records.GuestRecord
	for _, g := range guests {
		arrival, departure := trim(g.Arrival), trim(g.Departure)
		if arrival == "" || departure == "" || arrival == departure {
			continue
		}
		out = append(out, records.GuestRecord{
			Source:           records.SourcePolice,
			RoomNo:           trim(g.Room),
			FirstName:        titleWords(g.FirstName),
			LastName:         titleWords(g.LastName),
			DocumentNumber:   normalizeDocumentNumber(g.DocumentNo),
			DocumentType:     NormalizeDocumentType(g.DocumentType),
			Nationality:      trim(g.Nationality),
			ResidenceCountry: trim(g.Residence),
			BirthDate:        trim(g.BirthDate),
			ArrivalDate:      arrival,
			DepartureDate:    departure,
		})
	}
	return out
}

// normalizeDocumentNumber lower-cases a document number, folding the
// dotless ı that Turkish keyboards produce for "I".
func normalizeDocumentNumber(s string) string {
	return strings.ToLower(strings.ReplaceAll(trim(s), "ı", "i"))
}

// NormalizeDocumentType maps the report's document type wording onto
// records.DocumentNationalID or records.DocumentPassport. Unrecognised
// wording is kept as is.
func NormalizeDocumentType(s string) string {
	raw := trim(s)
	c := names.Canonicalize(raw)
	switch {
	case c == "":
		return ""
	case strings.Contains(c, "PASAPORT") || strings.Contains(c, "PASSPORT") || c == "P":
		return records.DocumentPassport
	case strings.Contains(c, "KIMLIK") || strings.Contains(c, "NUFUS") ||
		c == "TC" || c == "NATIONAL-ID" || c == "NATIONALID" || c == "ID":
		return records.DocumentNationalID
	default:
		return raw
	}
}

func titleWords(s string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(s), " "))
}
