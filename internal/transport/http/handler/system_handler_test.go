package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProber struct {
	names []string
	err   error
	panic bool
}

func (f fakeProber) CollectionNames(context.Context) ([]string, error) {
	if f.panic {
		panic("driver state corrupted")
	}
	return f.names, f.err
}

func diag(p Prober, s DiagSettings) Diagnostics {
	return NewSystemHandler("cutConnect", p, s, zap.NewNop()).Diagnose(context.Background())
}

func TestDiagnoseWithoutStore(t *testing.T) {
	d := NewSystemHandler("cutConnect", nil, DiagSettings{}, zap.NewNop()).Diagnose(context.Background())

	assert.Equal(t, "✅ Running", d.Backend)
	assert.Equal(t, "⚠️  Available but not initialized", d.Database)
	assert.Nil(t, d.DatabaseURL)
	assert.Nil(t, d.DatabaseName)
	assert.Equal(t, "Not Connected", d.ConnectionStatus)
	assert.Equal(t, []string{}, d.Collections)
}

func TestDiagnoseHealthy(t *testing.T) {
	d := diag(fakeProber{names: []string{"appointment", "barber"}}, DiagSettings{DatabaseName: "cutconnect"})

	assert.Equal(t, "✅ Connected & Working", d.Database)
	require.NotNil(t, d.DatabaseURL)
	assert.Equal(t, "❌ Not Set", *d.DatabaseURL)
	require.NotNil(t, d.DatabaseName)
	assert.Equal(t, "cutconnect", *d.DatabaseName)
	assert.Equal(t, "Connected", d.ConnectionStatus)
	assert.Equal(t, []string{"appointment", "barber"}, d.Collections)
}

func TestDiagnoseCapsCollections(t *testing.T) {
	var names []string
	for i := 0; i < 15; i++ {
		names = append(names, fmt.Sprintf("c%02d", i))
	}
	d := diag(fakeProber{names: names}, DiagSettings{DatabaseURLSet: true})

	assert.Len(t, d.Collections, 10)
	assert.Equal(t, "c09", d.Collections[9])
	assert.Equal(t, "✅ Set", *d.DatabaseURL)
}

func TestDiagnoseTruncatesProbeError(t *testing.T) {
	long := strings.Repeat("é", 80)
	d := diag(fakeProber{err: errors.New(long)}, DiagSettings{DatabaseURLSet: true})

	assert.Equal(t, "⚠️  Connected but Error: "+strings.Repeat("é", 50), d.Database)
	assert.Equal(t, "Connected", d.ConnectionStatus)
	assert.Equal(t, []string{}, d.Collections)
}

func TestDiagnoseRecoversPanic(t *testing.T) {
	d := diag(fakeProber{panic: true}, DiagSettings{})

	assert.Equal(t, "❌ Error: driver state corrupted", d.Database)
	assert.Equal(t, "✅ Running", d.Backend)
}
