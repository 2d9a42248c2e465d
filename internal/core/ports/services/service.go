package services

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Journal      JournalSvcFacade
	Balance      BalanceSvcFacade
	Reporting    ReportingSvcFacade
	Period       PeriodSvcFacade
	Sequence     SequenceSvcFacade
	TaxCode      TaxCodeSvcFacade
	GST          GSTSvcFacade
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
}
