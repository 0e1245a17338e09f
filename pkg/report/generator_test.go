package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"legalbot-be/pkg/legal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{}) {}
func (nopLogger) Warn(module, message string, details map[string]interface{}) {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }

func sampleDetail(code string) legal.ProcessDetail {
	return legal.ProcessDetail{
		ProcessSummary: legal.ProcessSummary{
			Code:         code,
			Tag:          "Trabalhista",
			Registration: "0001234-56.2024.5.02.0011",
			Court:        "2ª Vara do Trabalho",
			City:         "São Paulo",
			Status:       "Aguardando audiência",
			UpdatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		Plaintiffs: []legal.Party{{Name: "Maria da Silva", Document: "12345678900"}},
		Defendants: []legal.Party{{Name: "Acme Ltda"}},
		Performances: []legal.Performance{
			{Type: "Audiência designada", Responsible: "Dr. Souza", Observation: "Pauta de 15/04",
				UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		},
	}
}

func TestGenerateWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir, "http://localhost:3000", nopLogger{})

	artifact, err := g.Generate(context.Background(), []legal.ProcessDetail{sampleDetail("PRC-001")}, "Maria da Silva")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(artifact.Filename, "relatorio-maria-da-silva-"))
	assert.True(t, strings.HasSuffix(artifact.Filename, ".pdf"))
	assert.Equal(t, "http://localhost:3000/reports/"+artifact.Filename, artifact.URL)

	info, err := os.Stat(filepath.Join(dir, artifact.Filename))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateMultipleProcesses(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir, "http://localhost:3000", nopLogger{})

	details := []legal.ProcessDetail{sampleDetail("PRC-001"), sampleDetail("PRC-002"), sampleDetail("PRC-003")}
	artifact, err := g.Generate(context.Background(), details, "Maria")
	require.NoError(t, err)

	single, err := g.Generate(context.Background(), details[:1], "Maria")
	require.NoError(t, err)

	multiInfo, err := os.Stat(filepath.Join(dir, artifact.Filename))
	require.NoError(t, err)
	singleInfo, err := os.Stat(filepath.Join(dir, single.Filename))
	require.NoError(t, err)

	// One page per process.
	assert.Greater(t, multiInfo.Size(), singleInfo.Size())
}

func TestGenerateRejectsEmptyInput(t *testing.T) {
	g := NewGenerator(t.TempDir(), "http://localhost:3000", nopLogger{})
	_, err := g.Generate(context.Background(), nil, "Maria")
	assert.Error(t, err)
}

func TestDeleteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir, "http://localhost:3000", nopLogger{})

	artifact, err := g.Generate(context.Background(), []legal.ProcessDetail{sampleDetail("PRC-001")}, "Maria")
	require.NoError(t, err)

	assert.True(t, g.Delete(artifact.Filename))
	assert.False(t, g.Delete(artifact.Filename))
	assert.False(t, g.Delete("never-existed.pdf"))

	_, err = os.Stat(filepath.Join(dir, artifact.Filename))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteStaysInsideReportsDir(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "..", "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0644))

	g := NewGenerator(dir, "http://localhost:3000", nopLogger{})
	g.Delete("../victim.txt")

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "maria-da-silva", slugify("Maria da Silva"))
	assert.Equal(t, "cliente", slugify(""))
	assert.Equal(t, "cliente", slugify("!!!"))
	assert.Equal(t, "joo", slugify("João")) // non-ascii runes are dropped
}
