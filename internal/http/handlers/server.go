package handlers

import (
	"github.com/iEkal8fGe/warehouse/internal/auth"
	"github.com/iEkal8fGe/warehouse/internal/repo"
)

var (
	userRepo      repo.UserRepository
	warehouseRepo repo.WarehouseRepository
	productRepo   repo.ProductRepository
	orderRepo     repo.OrderRepository
	supplyRepo    repo.SupplyRepository
	inventoryRepo repo.InventoryRepository

	revoker        auth.Revoker
	externalAPIKey string
)

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetWarehouseRepo(r repo.WarehouseRepository) {
	warehouseRepo = r
}

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetOrderRepo(r repo.OrderRepository) {
	orderRepo = r
}

func SetSupplyRepo(r repo.SupplyRepository) {
	supplyRepo = r
}

func SetInventoryRepo(r repo.InventoryRepository) {
	inventoryRepo = r
}

func SetRevoker(r auth.Revoker) {
	revoker = r
}

func SetExternalAPIKey(key string) {
	externalAPIKey = key
}

// TokenRevoker and ExternalAPIKey expose the wired instances to the
// middleware layer, which lives one package up.
func TokenRevoker() auth.Revoker {
	return revoker
}

func ExternalAPIKey() string {
	return externalAPIKey
}

func UserRepo() repo.UserRepository {
	return userRepo
}
