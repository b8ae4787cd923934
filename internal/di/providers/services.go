package providers

import (
	"github.com/samber/do/v2"

	"github.com/locallibrary/catalog-server/internal/logger"
	"github.com/locallibrary/catalog-server/internal/service"
)

// ProvideServices provides the catalog workflow services.
func ProvideServices(i do.Injector) (*service.Services, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.New(storeHandle.Store, log.Logger), nil
}
