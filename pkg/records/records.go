// Package records defines the normalized record shapes shared by every
// nightaudit component. Parsers produce these records, and the matcher,
// validators and table assembler consume them. Nothing downstream of a
// normalizer ever sees a raw XML or spreadsheet tree.
package records

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Source identifies which export a record came from.
type Source string

// String returns the string representation of a source.
func (s Source) String() string {
	return string(s)
}

// Record sources.
const (
	SourceInhouse  Source = "inhouse"
	SourceKBS      Source = "kbs"
	SourcePolice   Source = "police"
	SourceRouting  Source = "routing"
	SourceCashring Source = "cashring"
)

// Document types recognised by the document validators.
const (
	DocumentNationalID = "national-id"
	DocumentPassport   = "passport"
)

// AccompanyingSeparator splits the accompanying names of an in-house record.
const AccompanyingSeparator = "/"

// CommentSeparator joins the segments of a multi-segment comment.
const CommentSeparator = " || "

// GuestRecord is one guest (or one room's primary guest) from the in-house
// roster, the KBS registration feed or the police report.
type GuestRecord struct {
	Source Source `json:"source" yaml:"source"`
	RoomNo string `json:"room_no" yaml:"room_no"`

	// Name is the combined name as exported, "Last, First, HONORIFIC" for
	// the in-house roster.
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" yaml:"last_name,omitempty"`

	AccompanyingNames string `json:"accompanying_names,omitempty" yaml:"accompanying_names,omitempty"`
	Adults            int    `json:"adults" yaml:"adults"`
	Children          int    `json:"children" yaml:"children"`

	CompanyName   string          `json:"company_name,omitempty" yaml:"company_name,omitempty"`
	RateCode      string          `json:"rate_code,omitempty" yaml:"rate_code,omitempty"`
	Rate          decimal.Decimal `json:"rate" yaml:"rate"`
	CurrencyCode  string          `json:"currency_code,omitempty" yaml:"currency_code,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty" yaml:"payment_method,omitempty"`
	Balance       decimal.Decimal `json:"balance" yaml:"balance"`

	ArrivalDate   string `json:"arrival_date,omitempty" yaml:"arrival_date,omitempty"`
	DepartureDate string `json:"departure_date,omitempty" yaml:"departure_date,omitempty"`

	Comment         string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	CommentSegments []string `json:"comment_segments,omitempty" yaml:"comment_segments,omitempty"`

	DocumentNumber   string `json:"document_number,omitempty" yaml:"document_number,omitempty"`
	DocumentType     string `json:"document_type,omitempty" yaml:"document_type,omitempty"`
	Nationality      string `json:"nationality,omitempty" yaml:"nationality,omitempty"`
	ResidenceCountry string `json:"residence_country,omitempty" yaml:"residence_country,omitempty"`
	BirthDate        string `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
}

// Key is the identity of a guest record. Upstream data carries no
// surrogate key.
type Key struct {
	Source Source
	RoomNo string
	Name   string
}

// Key returns the (source, room, name) identity of the record.
func (g GuestRecord) Key() Key {
	return Key{Source: g.Source, RoomNo: NormalizeRoom(g.RoomNo), Name: g.FullName()}
}

// FullName returns the best single-string name for the record. The combined
// Name wins; otherwise first and last names are joined.
func (g GuestRecord) FullName() string {
	if name := strings.TrimSpace(g.Name); name != "" {
		return name
	}
	return strings.TrimSpace(strings.Join(nonEmpty(g.FirstName, g.LastName), " "))
}

// Accompanying returns the secondary occupants, trimmed, empties dropped.
func (g GuestRecord) Accompanying() []string {
	if strings.TrimSpace(g.AccompanyingNames) == "" {
		return nil
	}
	return nonEmpty(strings.Split(g.AccompanyingNames, AccompanyingSeparator)...)
}

// Declared returns the declared head count, adults plus children.
func (g GuestRecord) Declared() int {
	return g.Adults + g.Children
}

// Named returns the number of named occupants, the primary plus every
// accompanying name.
func (g GuestRecord) Named() int {
	return 1 + len(g.Accompanying())
}

// GuestRef is the partial view of a guest carried by a match discrepancy.
type GuestRef struct {
	Source    Source `json:"source" yaml:"source"`
	RoomNo    string `json:"room_no" yaml:"room_no"`
	Name      string `json:"name" yaml:"name"`
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
}

// Ref returns the partial view of the record.
func (g GuestRecord) Ref() *GuestRef {
	return &GuestRef{
		Source:    g.Source,
		RoomNo:    g.RoomNo,
		Name:      g.FullName(),
		FirstName: g.FirstName,
		LastName:  g.LastName,
	}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
