package services

import (
	portsrepo "github.com/fdcsoft/fdc_core_app/internal/core/ports/repositories"
	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// The gate is shared; every mutating service path funnels through it.
	gate := NewPermissionGate()

	container := &portssvc.ServiceContainer{}
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.HistoryRepo, repos.AttachmentRepo, gate)
	container.Workpaper = NewWorkpaperLockService(repos.TransactionRepo, repos.WorkpaperRepo, gate)
	container.Sync = NewMyFDCSyncService(repos.TransactionRepo)
	container.Import = NewImportService(repos.TransactionRepo, repos.AttachmentRepo)

	return container
}
