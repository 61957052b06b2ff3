package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-risk-service/internal/config"
	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/couchcryptid/quake-risk-service/internal/session"
	"github.com/couchcryptid/quake-risk-service/internal/store"
)

func newSession(t *testing.T) (*session.Session, string) {
	t.Helper()
	dir := t.TempDir()
	return session.New(store.New(), dir), dir
}

func TestRunForm_SubmitAndExport(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.October, 19, 7, 45, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	sess, dir := newSession(t)
	in := strings.Join([]string{
		":pdf",
		"10", "20", "7.5",
		"abc", "20", "7.5",
		"50",
		":csv",
		":quit",
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, runForm(context.Background(), strings.NewReader(in), &out, sess))

	got := out.String()
	assert.Contains(t, got, promptDistance)
	assert.Contains(t, got, promptDepth)
	assert.Contains(t, got, promptMagnitude)
	assert.Contains(t, got, "Tidak ada data untuk diekspor!")
	assert.Contains(t, got, "Pastikan semua input berupa angka!")

	csvPath := filepath.Join(dir, "data_gempa_20261019_074500.csv")
	assert.Contains(t, got, "Data berhasil diekspor ke "+csvPath)
	assert.FileExists(t, csvPath)

	rows := sess.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, domain.RiskTsunami, rows[0].Risk)
	assert.Equal(t, domain.RiskPotentialTsunami, rows[1].Risk)
}

func TestRunForm_InvalidFieldKeepsOthers(t *testing.T) {
	sess, _ := newSession(t)
	in := strings.Join([]string{
		"10", "dalam", "7.5",
		"x",
		"20",
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, runForm(context.Background(), strings.NewReader(in), &out, sess))

	got := out.String()
	assert.Equal(t, 2, strings.Count(got, domain.InvalidInputMessage+" ("+domain.FieldDepth+")"))
	assert.Equal(t, 3, strings.Count(got, promptDepth), "only depth is asked again")
	assert.Equal(t, 1, strings.Count(got, promptMagnitude))

	rows := sess.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ClassifiedRecord{
		Distance:  domain.DistanceNear,
		Depth:     domain.DepthVeryDeep,
		Magnitude: domain.MagnitudeHigh,
		Risk:      domain.RiskTsunami,
	}, rows[0].ClassifiedRecord)
}

func TestRunForm_ExplicitExportPathAndTable(t *testing.T) {
	sess, _ := newSession(t)
	dest := filepath.Join(t.TempDir(), "laporan.pdf")
	in := "150\n30\n3\n:table\n:pdf " + dest + "\n"

	var out bytes.Buffer
	require.NoError(t, runForm(context.Background(), strings.NewReader(in), &out, sess))

	assert.FileExists(t, dest)
	assert.Equal(t, 2, strings.Count(out.String(), "Tidak Berpotensi"), "table printed after submit and on :table")
}

func TestRunForm_EndOfInputMidRecord(t *testing.T) {
	sess, _ := newSession(t)
	var out bytes.Buffer
	require.NoError(t, runForm(context.Background(), strings.NewReader("10\n20\n"), &out, sess))
	assert.True(t, sess.IsEmpty())
}

func TestRenderTable(t *testing.T) {
	s := store.New()
	s.Append(domain.Classify(domain.Measurement{Distance: 10, Depth: 20, Magnitude: 7.5}))

	var out bytes.Buffer
	require.NoError(t, renderTable(&out, s.Rows()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "No"))
	assert.Contains(t, lines[0], "Jarak Dari Pantai")
	assert.Contains(t, lines[1], "Dekat")
	assert.Contains(t, lines[1], "Tsunami")
}

func TestClassifyCmd(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"classify", "--jarak", "50", "--kedalaman", "5", "--skala", "6.0"})

	require.NoError(t, cmd.Execute())

	var rec domain.ClassifiedRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, domain.ClassifiedRecord{
		Distance:  domain.DistanceMedium,
		Depth:     domain.DepthDeep,
		Magnitude: domain.MagnitudeMedium,
		Risk:      domain.RiskPotentialTsunami,
	}, rec)
}

func TestClassifyCmd_Invalid(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"classify", "--jarak", "dekat", "--kedalaman", "5", "--skala", "6"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, domain.InvalidInputMessage, err.Error())
}

func TestClassifyCmd_MissingFlag(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"classify", "--jarak", "10"})
	assert.Error(t, cmd.Execute())
}

func TestImportCmd(t *testing.T) {
	exportDir := t.TempDir()
	t.Setenv("EXPORT_DIR", exportDir)

	src := filepath.Join(t.TempDir(), "gempa.csv")
	require.NoError(t, os.WriteFile(src, []byte("jarak,kedalaman,skala\n10,20,7.5\nx,1,1\n150,30,3\n"), 0o600))
	pdfOut := filepath.Join(t.TempDir(), "out.pdf")

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"import", src, "--csv", "-", "--pdf", pdfOut})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "2 imported, 1 skipped")
	assert.Contains(t, errOut.String(), "line 3")
	assert.FileExists(t, pdfOut)

	matches, err := filepath.Glob(filepath.Join(exportDir, "data_gempa_*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestImportCmd_NothingValid(t *testing.T) {
	t.Setenv("EXPORT_DIR", t.TempDir())
	src := filepath.Join(t.TempDir(), "gempa.csv")
	require.NoError(t, os.WriteFile(src, []byte("jarak,kedalaman,skala\nx,1,1\n"), 0o600))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"import", src, "--csv", "-"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Tidak ada data untuk diekspor!")
}

func TestImportCmd_MissingFile(t *testing.T) {
	t.Setenv("EXPORT_DIR", t.TempDir())
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"import", filepath.Join(t.TempDir(), "nope.csv")})
	assert.Error(t, cmd.Execute())
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		HTTPAddr:        "127.0.0.1:0",
		LogLevel:        "error",
		LogFormat:       "text",
		ShutdownTimeout: time.Second,
		ExportDir:       t.TempDir(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	assert.NoError(t, runServe(ctx, cfg))
}
