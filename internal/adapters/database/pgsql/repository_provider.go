package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rostech/erp-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository off one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) repositories.RepositoryProvider {
	return repositories.RepositoryProvider{
		Customer:    NewCustomerRepository(pool),
		Product:     NewProductRepository(pool),
		Sale:        NewSaleRepository(pool),
		Installment: NewInstallmentRepository(pool),
		Safe:        NewSafeRepository(pool),
		Partner:     NewPartnerRepository(pool),
		User:        NewUserRepository(pool),
	}
}
