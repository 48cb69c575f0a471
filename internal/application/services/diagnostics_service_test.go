package services

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/taskboard/core/internal/adapters/repository"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

func newDiagnostics() *DiagnosticsService {
	return NewDiagnosticsService(func() ports.DocumentStore {
		return repository.NewMemoryStore(nil)
	}, logger.NewNop())
}

func TestRunUnit(t *testing.T) {
	is := is.New(t)

	rep := newDiagnostics().RunUnit()
	is.Equal(rep.Suite, "unitarias")
	is.True(rep.Total > 0)
	is.Equal(rep.Failed, 0)
	is.Equal(rep.Passed, rep.Total)
	is.Equal(len(rep.Results), rep.Total)
}

func TestRunIntegration(t *testing.T) {
	is := is.New(t)

	rep := newDiagnostics().RunIntegration(context.Background())
	is.Equal(rep.Suite, "integracion")
	is.True(rep.Total > 0)
	for _, r := range rep.Results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	is.Equal(rep.Failed, 0)
}
