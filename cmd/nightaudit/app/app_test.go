package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nightaudit/pkg/logging"
	"github.com/agentstation/nightaudit/pkg/validate"
)

const inhouseXML = `<GIBYROOM><LIST_G_ROOM>
  <G_ROOM><ROOM>0101</ROOM><FULL_NAME>Doe, John</FULL_NAME><ADULTS>2</ADULTS><SHARE_AMOUNT>100</SHARE_AMOUNT>
    <LIST_G_COMMENT_RESV_NAME_ID><G_COMMENT_RESV_NAME_ID><RES_COMMENT>100 EUR</RES_COMMENT></G_COMMENT_RESV_NAME_ID></LIST_G_COMMENT_RESV_NAME_ID></G_ROOM>
  <G_ROOM><ROOM>0102</ROOM><FULL_NAME>Kaya, Ayse</FULL_NAME><ADULTS>1</ADULTS><PAYMENT_METHOD>CL</PAYMENT_METHOD></G_ROOM>
</LIST_G_ROOM></GIBYROOM>`

const policeXML = `<P2203_POLISRAPORU><LIST_G_VERILENODANO>
  <G_VERILENODANO>
    <VERILENODANO>0101</VERILENODANO><ADI>JOHN</ADI><SOYADI>DOE</SOYADI>
    <KIMLIKSERINO>U1234567</KIMLIKSERINO>
    <UYRUGU>USA</UYRUGU><KIMLIKBELGESITURU>Pasaport</KIMLIKBELGESITURU>
    <IKAMETADRESI>USA</IKAMETADRESI><GELISTARIHI>01.10.2026</GELISTARIHI><AYRILISTARIHI>04.10.2026</AYRILISTARIHI>
  </G_VERILENODANO>
</LIST_G_VERILENODANO></P2203_POLISRAPORU>`

// testApp builds an App without reading the environment.
func testApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	notices := &bytes.Buffer{}
	app, err := New("1.0.0", "abc123", "2026-10-15", "test",
		WithConfig(&Config{Rules: validate.DefaultRules(), PseudoRoomFloor: 9000}),
		WithLogger(logging.NewNopLogger()),
		WithNoticeWriter(notices),
	)
	require.NoError(t, err)
	return app, notices
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	app, _ := testApp(t)
	out, err := run(t, app, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "nightaudit 1.0.0")
	assert.Contains(t, out, "commit:   abc123")
}

func TestCheckCommandJSON(t *testing.T) {
	dir := t.TempDir()
	app, notices := testApp(t)

	out, err := run(t, app, "check", "-o", "json",
		"--inhouse", writeFile(t, dir, "inhouse.xml", inhouseXML),
		"--police", writeFile(t, dir, "police.xml", policeXML))
	require.NoError(t, err)

	var result struct {
		Checks []struct {
			ID      string `json:"id"`
			Status  string `json:"status"`
			Flagged int    `json:"flagged"`
		} `json:"checks"`
		Findings []struct {
			Type   string `json:"type"`
			RoomNo string `json:"room_no"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	status := make(map[string]string)
	for _, c := range result.Checks {
		status[c.ID] = c.Status
	}
	assert.Equal(t, "completed", status["guest_count"])
	assert.Equal(t, "completed", status["police_coverage"])
	assert.Equal(t, "pending", status["kbs_opera"])

	types := make(map[string]bool)
	for _, f := range result.Findings {
		types[f.Type] = true
	}
	assert.True(t, types["GUEST_COUNT_MISMATCH"])
	assert.True(t, types["MISSING_BIRTH_DATE"])
	assert.True(t, types["MISSING_POLICE_DATA"])

	assert.NotEmpty(t, notices.String())
}

func TestCheckCommandFailOnError(t *testing.T) {
	dir := t.TempDir()
	app, _ := testApp(t)

	_, err := run(t, app, "check", "-o", "json", "--fail-on-error",
		"--police", writeFile(t, dir, "police.xml", policeXML))
	require.Error(t, err)
}

func TestCheckCommandRequiresInput(t *testing.T) {
	app, _ := testApp(t)
	_, err := run(t, app, "check")
	require.Error(t, err)
}

func TestCheckCommandLenientAboutBrokenExports(t *testing.T) {
	dir := t.TempDir()
	app, notices := testApp(t)

	_, err := run(t, app, "check", "-o", "json",
		"--inhouse", writeFile(t, dir, "inhouse.xml", inhouseXML),
		"--police", writeFile(t, dir, "police.xml", `<P2203_POLISRAPORU/>`))
	require.NoError(t, err)
	assert.Contains(t, notices.String(), "police")

	_, err = run(t, app, "check", "-o", "json", "--strict",
		"--inhouse", writeFile(t, dir, "inhouse.xml", inhouseXML),
		"--police", writeFile(t, dir, "police.xml", `<P2203_POLISRAPORU/>`))
	require.Error(t, err)
}

func TestTableCommand(t *testing.T) {
	dir := t.TempDir()
	app, _ := testApp(t)

	out, err := run(t, app, "table", "-o", "json", "--highlighted",
		"--inhouse", writeFile(t, dir, "inhouse.xml", inhouseXML))
	require.NoError(t, err)

	var rows []struct {
		RoomNo string `json:"room_no"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "0102", rows[0].RoomNo)

	_, err = run(t, app, "table")
	require.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	app, _ := testApp(t)
	target := filepath.Join(dir, "audit.md")

	_, err := run(t, app, "report", "--out", target, "--date", "2026-10-14", "--rooms",
		"--inhouse", writeFile(t, dir, "inhouse.xml", inhouseXML))
	require.NoError(t, err)

	body, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(body), "# Night Audit Report")
	assert.Contains(t, string(body), "2026-10-14")
	assert.Contains(t, string(body), "## Rooms")
}

func TestInvalidFormat(t *testing.T) {
	app, _ := testApp(t)
	_, err := run(t, app, "version", "-o", "xml")
	require.Error(t, err)
}
