// Package integration runs a complete night through the public API using
// export files on disk.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/nightaudit"
	"github.com/agentstation/nightaudit/pkg/audit"
	"github.com/agentstation/nightaudit/pkg/logging"
	"github.com/agentstation/nightaudit/pkg/sources"
)

const inhouseXML = `<GIBYROOM><LIST_G_ROOM>
  <G_ROOM><ROOM>0101</ROOM><FULL_NAME>Doe, John</FULL_NAME><ADULTS>1</ADULTS><SHARE_AMOUNT>100</SHARE_AMOUNT><PAYMENT_METHOD>CA</PAYMENT_METHOD></G_ROOM>
  <G_ROOM><ROOM>0102</ROOM><FULL_NAME>Kaya, Ayse</FULL_NAME><ADULTS>1</ADULTS><PAYMENT_METHOD>CL</PAYMENT_METHOD></G_ROOM>
</LIST_G_ROOM></GIBYROOM>`

const policeXML = `<P2203_POLISRAPORU><LIST_G_VERILENODANO>
  <G_VERILENODANO>
    <VERILENODANO>0101</VERILENODANO><ADI>JOHN</ADI><SOYADI>DOE</SOYADI>
    <KIMLIKSERINO>U1234567</KIMLIKSERINO><DOGUMTARIHI>01.01.1980</DOGUMTARIHI>
    <UYRUGU>USA</UYRUGU><KIMLIKBELGESITURU>Pasaport</KIMLIKBELGESITURU>
    <IKAMETADRESI>USA</IKAMETADRESI><GELISTARIHI>01.10.2026</GELISTARIHI><AYRILISTARIHI>04.10.2026</AYRILISTARIHI>
  </G_VERILENODANO>
</LIST_G_VERILENODANO></P2203_POLISRAPORU>`

const routingXML = `<ROUTING_DETAILS><LIST_G_GROUP1_SORT><G_GROUP1_SORT><LIST_G_GROUP2_SORT><G_GROUP2_SORT><LIST_G_ROOM_NO>
  <G_ROOM_NO><ROOM_NO>0101</ROOM_NO><SHORT_RESV_STATUS>CKIN</SHORT_RESV_STATUS></G_ROOM_NO>
</LIST_G_ROOM_NO></G_GROUP2_SORT></LIST_G_GROUP2_SORT></G_GROUP1_SORT></LIST_G_GROUP1_SORT></ROUTING_DETAILS>`

const cashringXML = `<P2009_BALANCEBYWINDOW><LIST_G_ROOM>
  <G_ROOM><ROOM>0102</ROOM><BALANCE>500</BALANCE><WINDOW1>500</WINDOW1><PM>CL</PM></G_ROOM>
</LIST_G_ROOM></P2009_BALANCEBYWINDOW>`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func writeKBS(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"T.C. No", "Belge No", "Adı", "Soyadı", "Oda No"},
		{"", "U1234567", "JOHN", "DOE", "0101"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(dir, "kbs.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestFullNight(t *testing.T) {
	dir := t.TempDir()
	files := map[sources.ID]string{
		sources.InhouseID:  writeFile(t, dir, "inhouse.xml", inhouseXML),
		sources.KBSID:      writeKBS(t, dir),
		sources.PoliceID:   writeFile(t, dir, "police.xml", policeXML),
		sources.RoutingID:  writeFile(t, dir, "routing.xml", routingXML),
		sources.CashringID: writeFile(t, dir, "cashring.xml", cashringXML),
	}

	auditor, err := nightaudit.New(nightaudit.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	var notices []audit.Notice
	auditor.OnNotice(func(n audit.Notice) { notices = append(notices, n) })

	require.NoError(t, auditor.LoadFiles(context.Background(), files))
	state := auditor.State()

	for _, id := range sources.NewRegistry().IDs() {
		assert.True(t, state.Loaded(id), "source %s", id)
	}
	for _, c := range state.Checks() {
		assert.Equal(t, audit.StatusCompleted, c.Status, "check %s", c.ID)
	}

	t.Run("registered guest matches in-house", func(t *testing.T) {
		assert.Empty(t, state.Discrepancies().ForRoom("0101"))
		assert.NotEmpty(t, state.Discrepancies().ForRoom("0102"))
	})

	t.Run("room table lists every in-house room", func(t *testing.T) {
		rows := state.Table()
		require.Len(t, rows, 2)
		assert.Equal(t, "0101", rows[0].RoomNo)
		assert.Equal(t, "0102", rows[1].RoomNo)
	})

	t.Run("notices were delivered", func(t *testing.T) {
		assert.NotEmpty(t, notices)
		assert.Len(t, notices, len(state.Notices()))
	})
}

func TestReloadReplacesSource(t *testing.T) {
	dir := t.TempDir()
	auditor, err := nightaudit.New(nightaudit.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, auditor.LoadFile(ctx, sources.InhouseID, writeFile(t, dir, "inhouse.xml", inhouseXML)))
	require.NoError(t, auditor.LoadFile(ctx, sources.KBSID, writeKBS(t, dir)))
	before := auditor.State()
	assert.NotEmpty(t, before.Discrepancies().ForRoom("0102"))

	single := `<GIBYROOM><LIST_G_ROOM><G_ROOM><ROOM>0101</ROOM><FULL_NAME>Doe, John</FULL_NAME><ADULTS>1</ADULTS></G_ROOM></LIST_G_ROOM></GIBYROOM>`
	require.NoError(t, auditor.LoadFile(ctx, sources.InhouseID, writeFile(t, dir, "inhouse2.xml", single)))
	after := auditor.State()

	assert.Empty(t, after.Discrepancies().ForRoom("0102"))
	assert.Len(t, after.Table(), 1)
	assert.Len(t, before.Table(), 2)
}
