package repositories

// RepositoryProvider aggregates the repository implementations handed to
// the service container.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalRepositoryFacade
	BalanceRepo      BalanceReader
	PeriodRepo       PeriodRepositoryFacade
	SequenceRepo     SequenceRepository
	TaxCodeRepo      TaxCodeRepositoryFacade
	GSTReturnRepo    GSTReturnRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
}
