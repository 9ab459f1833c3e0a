package repository

import (
	"context"

	"github.com/budoverein/dojokasse/internal/domain/entity"
)

// BatchRepository definiert den Persistenz-Port für Lastschriftläufe.
// Create persistiert Lauf und eingefrorene Transaktionen atomar: ein Lauf ohne
// Posten oder Posten ohne Lauf dürfen nie entstehen.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch, txs []entity.BatchTransaction) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	ListByDojo(ctx context.Context, dojoID string, limit, offset int) ([]*entity.Batch, error)

	// GetTransactions liefert die beim Anlegen eingefrorenen Posten des Laufs
	// in stabiler Reihenfolge (Einfügereihenfolge). Grundlage des byte-stabilen
	// pain.008-Exports.
	GetTransactions(ctx context.Context, batchID string) ([]entity.BatchTransaction, error)

	// UpdateStatus persistiert einen bereits validierten Statusübergang.
	UpdateStatus(ctx context.Context, id, status string) error
}
