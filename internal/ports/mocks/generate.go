//go:generate mockgen -source=../remote_orders.go -destination=./mock_remote_orders.go -package=mocks
//go:generate mockgen -source=../order_store.go   -destination=./mock_order_store.go   -package=mocks
//go:generate mockgen -source=../validator.go     -destination=./mock_validator.go     -package=mocks
//go:generate mockgen -source=../logger.go        -destination=./mock_logger.go        -package=mocks
//go:generate mockgen -source=../notifier.go      -destination=./mock_notifier.go      -package=mocks

package mocks
