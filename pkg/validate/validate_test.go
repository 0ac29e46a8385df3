package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/validate"
)

func types(findings []records.Finding) []records.FindingType {
	out := make([]records.FindingType, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Type)
	}
	return out
}

func TestGuestCount(t *testing.T) {
	tests := []struct {
		name   string
		record records.GuestRecord
		want   int
	}{
		{
			name:   "declared three, named two",
			record: records.GuestRecord{RoomNo: "101", Adults: 2, Children: 1, AccompanyingNames: "Jane Doe"},
			want:   1,
		},
		{
			name:   "single guest",
			record: records.GuestRecord{RoomNo: "102", Adults: 1},
			want:   0,
		},
		{
			name:   "blank accompanying segments ignored",
			record: records.GuestRecord{RoomNo: "103", Adults: 2, AccompanyingNames: "Jane Doe/ / "},
			want:   0,
		},
		{
			name:   "more names than declared",
			record: records.GuestRecord{RoomNo: "104", Adults: 1, AccompanyingNames: "A B/C D"},
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validate.GuestCount([]records.GuestRecord{tt.record})
			require.Len(t, got, tt.want)
			for _, f := range got {
				assert.Equal(t, records.GuestCountMismatch, f.Type)
				assert.Equal(t, tt.record.RoomNo, f.RoomNo)
			}
		})
	}

	got := validate.GuestCount([]records.GuestRecord{{RoomNo: "101", Adults: 2, Children: 1, AccompanyingNames: "Jane Doe"}})
	assert.Equal(t, "3", got[0].Details["declared"])
	assert.Equal(t, "2", got[0].Details["named"])
}

func TestDocumentCompleteness(t *testing.T) {
	got := validate.DocumentCompleteness([]records.GuestRecord{
		{RoomNo: "1", FirstName: "A", LastName: "B", DocumentNumber: " ", DocumentType: "", ResidenceCountry: "", Nationality: ""},
		{RoomNo: "2", DocumentNumber: "x", DocumentType: records.DocumentPassport, ResidenceCountry: "USA", Nationality: ""},
	})
	assert.Equal(t, []records.FindingType{
		records.MissingBelgeNo,
		records.MissingBelgeTuru,
		records.MissingIkametAdresi,
		records.MissingUyruk,
		records.MissingUyruk,
	}, types(got))
	assert.Contains(t, got[0].Message, "A B")
}

func TestDocumentConsistency(t *testing.T) {
	rules := validate.DefaultRules()
	national := func(number, nationality, residence string) records.GuestRecord {
		return records.GuestRecord{
			RoomNo: "1", DocumentType: records.DocumentNationalID,
			DocumentNumber: number, Nationality: nationality, ResidenceCountry: residence,
		}
	}
	passport := func(nationality, residence string) records.GuestRecord {
		return records.GuestRecord{
			RoomNo: "1", DocumentType: records.DocumentPassport,
			DocumentNumber: "U123", Nationality: nationality, ResidenceCountry: residence,
		}
	}

	tests := []struct {
		name   string
		record records.GuestRecord
		want   []records.FindingType
	}{
		{name: "valid citizen", record: national("12345678901", "TC", "TURKEY"), want: nil},
		{name: "home country spelled natively", record: national("12345678901", "tc", "Türkiye"), want: nil},
		{name: "reserved prefix", record: national("99123456789", "TC", "TURKEY"), want: []records.FindingType{records.TCKN9xWarning}},
		{name: "too short", record: national("1234567890", "TC", "TURKEY"), want: []records.FindingType{records.TCBelgeNoInvalid}},
		{name: "letters", record: national("1234567890a", "TC", "TURKEY"), want: []records.FindingType{records.TCBelgeNoInvalid}},
		{name: "short with reserved prefix is left alone", record: national("98123", "TC", "TURKEY"), want: nil},
		{
			name:   "foreign nationality and residence",
			record: national("12345678901", "DE", "GERMANY"),
			want:   []records.FindingType{records.TCUyrukMismatch, records.TCIkametMismatch},
		},
		{name: "passport holder", record: passport("USA", "USA"), want: nil},
		{name: "passport citizen", record: passport("TC", "USA"), want: []records.FindingType{records.PasUyrukTC}},
		{name: "passport resident", record: passport("USA", "TURKIYE"), want: []records.FindingType{records.PasIkametTurkey}},
		{
			name:   "passport citizen resident",
			record: passport("TC", "TURKEY"),
			want:   []records.FindingType{records.PasUyrukTC, records.PasIkametTurkey},
		},
		{
			name:   "unknown document type",
			record: records.GuestRecord{DocumentType: "Ehliyet", Nationality: "TC", ResidenceCountry: "USA", DocumentNumber: "1"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validate.DocumentConsistency([]records.GuestRecord{tt.record}, rules)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, types(got))
		})
	}
}

func TestDocumentConsistencySparseRecords(t *testing.T) {
	got := validate.DocumentConsistency([]records.GuestRecord{
		{RoomNo: "5", DocumentType: records.DocumentPassport, Nationality: "TC"},
	}, validate.Rules{})
	require.Len(t, got, 1)
	assert.Equal(t, records.PasUyrukTC, got[0].Type)
}

func TestDocumentsSkipsConsistencyForIncompleteRecords(t *testing.T) {
	got := validate.Documents([]records.GuestRecord{
		{RoomNo: "5", DocumentType: records.DocumentPassport, Nationality: "TC", DocumentNumber: "U1"},
		{RoomNo: "6", DocumentType: records.DocumentPassport, Nationality: "TC", DocumentNumber: "U2", ResidenceCountry: "USA"},
	}, validate.DefaultRules())

	assert.Equal(t, []records.FindingType{records.MissingIkametAdresi, records.PasUyrukTC}, types(got))
	assert.Equal(t, "5", got[0].RoomNo)
	assert.Equal(t, "6", got[1].RoomNo)
}

func TestBirthDates(t *testing.T) {
	got := validate.BirthDates([]records.GuestRecord{
		{RoomNo: "1", FirstName: "John", LastName: "Doe", BirthDate: "01.01.1980"},
		{RoomNo: "2", FirstName: "Jane", LastName: "Doe", BirthDate: "  "},
	})
	require.Len(t, got, 1)
	assert.Equal(t, records.MissingBirthDate, got[0].Type)
	assert.Equal(t, "2", got[0].RoomNo)
	assert.Contains(t, got[0].Message, "Jane Doe")
}

func TestPoliceCoverage(t *testing.T) {
	got := validate.PoliceCoverage(
		[]records.GuestRecord{
			{RoomNo: "0101", Name: "Doe, John"},
			{RoomNo: "0102", Name: "Roe, Rick"},
			{RoomNo: "0102", Name: "Roe, Ria"},
		},
		[]records.GuestRecord{{RoomNo: " 0101"}},
	)
	require.Len(t, got, 1)
	assert.Equal(t, records.MissingPoliceData, got[0].Type)
	assert.Equal(t, "0102", got[0].RoomNo)
}

func TestValidatorsAreIdempotent(t *testing.T) {
	police := []records.GuestRecord{
		{RoomNo: "1", DocumentType: records.DocumentNationalID, DocumentNumber: "99123456789", Nationality: "TC", ResidenceCountry: "TURKEY"},
		{RoomNo: "2"},
	}
	inhouse := []records.GuestRecord{{RoomNo: "1", Adults: 3}}

	assert.True(t, records.EqualFindings(validate.Documents(police, validate.DefaultRules()), validate.Documents(police, validate.DefaultRules())))
	assert.True(t, records.EqualFindings(validate.GuestCount(inhouse), validate.GuestCount(inhouse)))
	assert.True(t, records.EqualFindings(validate.BirthDates(police), validate.BirthDates(police)))
}

func TestDefaultRulesFillZeroValue(t *testing.T) {
	r := validate.Rules{RoutingMarker: " "}.Normalized()
	assert.Equal(t, validate.DefaultRules(), r)

	custom := validate.Rules{NationalDesignators: []string{"TR"}, RateTolerance: 0.5}.Normalized()
	assert.Equal(t, []string{"TR"}, custom.NationalDesignators)
	assert.Equal(t, 0.5, custom.RateTolerance)
	assert.Equal(t, "2", custom.RoutingMarker)
}

func TestRateMatchesComment(t *testing.T) {
	tol := decimal.NewFromInt(1)
	tests := []struct {
		name    string
		rate    string
		comment string
		want    bool
	}{
		{name: "stated", rate: "100.00", comment: "Rate 100 confirmed", want: true},
		{name: "not mentioned", rate: "100.00", comment: "no price mentioned", want: false},
		{name: "decimal comma", rate: "1250.50", comment: "1250,50 EUR BB", want: true},
		{name: "within tolerance", rate: "99.40", comment: "100 TL", want: true},
		{name: "outside tolerance", rate: "98", comment: "100 TL", want: false},
		{name: "thousand separator", rate: "1250", comment: "1.250,00 TRY", want: true},
		{name: "zero rate", rate: "0", comment: "anything", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validate.RateMatchesComment(decimal.RequireFromString(tt.rate), tt.comment, tol)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRateCheck(t *testing.T) {
	rules := validate.DefaultRules()
	rules.Corporate = []validate.CorporateRate{
		{RateCode: "AIRCREW", Company: "Sky Airlines", Rate: 80},
	}

	tests := []struct {
		name   string
		record records.GuestRecord
		want   validate.Highlights
	}{
		{
			name:   "consistent rate",
			record: records.GuestRecord{Rate: decimal.NewFromInt(100), Comment: "Rate 100 confirmed", PaymentMethod: "CA"},
			want:   validate.Highlights{},
		},
		{
			name:   "rate missing from comment",
			record: records.GuestRecord{Rate: decimal.NewFromInt(100), Comment: "no price mentioned"},
			want:   validate.Highlights{Rate: true},
		},
		{
			name:   "empty comment",
			record: records.GuestRecord{Rate: decimal.NewFromInt(100)},
			want:   validate.Highlights{},
		},
		{
			name:   "routing comment is not rate checked",
			record: records.GuestRecord{Rate: decimal.NewFromInt(100), Comment: "2 Ali Veli", PaymentMethod: "cl"},
			want:   validate.Highlights{Comment: true, CaCl: true},
		},
		{
			name: "routing marker in a later segment is not a routing comment",
			record: records.GuestRecord{
				Rate:            decimal.NewFromInt(100),
				Comment:         "VIP || 2 Ali Veli",
				CommentSegments: []string{"VIP", "2 Ali Veli"},
			},
			want: validate.Highlights{Rate: true},
		},
		{
			name:   "marker needs a space",
			record: records.GuestRecord{Rate: decimal.NewFromInt(250), Comment: "250 TL"},
			want:   validate.Highlights{},
		},
		{
			name:   "corporate account on wrong company and rate",
			record: records.GuestRecord{RateCode: "aircrew", CompanyName: "XYZOther Travel", Rate: decimal.NewFromInt(95), Comment: "95"},
			want:   validate.Highlights{Company: true, Rate: true},
		},
		{
			name:   "corporate account as agreed",
			record: records.GuestRecord{RateCode: "AIRCREW", CompanyName: "SKYSky Airlines", Rate: decimal.NewFromInt(80), Comment: "80 EUR"},
			want:   validate.Highlights{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validate.RateCheck(tt.record, rules)
			assert.Equal(t, tt.want, got)
		})
	}
}
