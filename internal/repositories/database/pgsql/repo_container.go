package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	balanceRepo := newPgxBalanceRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)
	taxCodeRepo := newPgxTaxCodeRepository(dbPool)
	gstReturnRepo := newPgxGSTReturnRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		JournalRepo:      journalRepo,
		BalanceRepo:      balanceRepo,
		PeriodRepo:       periodRepo,
		SequenceRepo:     sequenceRepo,
		TaxCodeRepo:      taxCodeRepo,
		GSTReturnRepo:    gstReturnRepo,
		CurrencyRepo:     currencyRepo,
		ExchangeRateRepo: exchangeRateRepo,
	}
}
