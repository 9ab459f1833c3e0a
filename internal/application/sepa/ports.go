package sepa

import (
	"context"

	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/repository"
)

// SepaTxRunner führt fn innerhalb einer DB-Transaktion aus. Lauf und
// eingefrorene Posten entstehen gemeinsam oder gar nicht.
type SepaTxRunner interface {
	RunSepa(ctx context.Context, fn func(batchRepo repository.BatchRepository) error) error
}

// Pain008Builder serialisiert einen Lauf in das pain.008-Dokument.
// Die Implementierung lebt in infrastructure/sepa; für denselben Lauf ist die
// Ausgabe byte-stabil.
type Pain008Builder interface {
	Build(dojo *entity.Dojo, batch *entity.Batch, txs []entity.BatchTransaction) ([]byte, error)
}
