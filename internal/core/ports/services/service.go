package services

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Auth        AuthSvcFacade
	User        UserSvcFacade
	Customer    CustomerSvcFacade
	Product     ProductSvcFacade
	Sale        SaleSvcFacade
	Installment InstallmentSvcFacade
	Safe        SafeSvcFacade
	Partner     PartnerSvcFacade
	Reporting   ReportingSvcFacade
}
