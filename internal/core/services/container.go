package services

import (
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/platform/config"
)

// NewContainer creates the service container with properly initialized
// dependencies. Construction order follows the dependency graph: masterdata
// services first, then the journal engine, then the calculators built on it.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Period = NewPeriodService(repos.PeriodRepo)
	container.Sequence = NewSequenceService(repos.SequenceRepo)
	container.TaxCode = NewTaxCodeService(repos.TaxCodeRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.Account,
		container.Period,
		container.TaxCode,
		cfg.BaseCurrencyCode,
		cfg.BaseCurrencyDecimalPlaces,
	)

	container.Balance = NewBalanceService(repos.BalanceRepo, container.Account)
	container.Reporting = NewReportingService(
		repos.BalanceRepo,
		container.Account,
		container.Balance,
		cfg.BaseCurrencyCode,
		cfg.BaseCurrencyDecimalPlaces,
	)

	container.GST = NewGSTService(repos.GSTReturnRepo, repos.BalanceRepo, container.Journal, container.Period, cfg.GST)

	return container
}
