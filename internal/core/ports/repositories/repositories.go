package repositories

// RepositoryProvider bundles every repository facade so wiring code can pass
// one value around instead of seven.
type RepositoryProvider struct {
	Customer    CustomerRepositoryFacade
	Product     ProductRepositoryFacade
	Sale        SaleRepositoryFacade
	Installment InstallmentRepositoryFacade
	Safe        SafeRepositoryFacade
	Partner     PartnerRepositoryFacade
	User        UserRepositoryFacade
}
