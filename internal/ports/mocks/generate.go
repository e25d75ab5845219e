//go:generate mockgen -source=../interaction_repository.go -destination=./mock_interaction_repository.go -package=mocks
//go:generate mockgen -source=../validator.go              -destination=./mock_validator.go              -package=mocks
//go:generate mockgen -source=../rejection_reporter.go     -destination=./mock_rejection_reporter.go     -package=mocks
//go:generate mockgen -source=../logger.go                 -destination=./mock_logger.go                 -package=mocks
//go:generate mockgen -source=../message_consumer.go       -destination=./mock_message_consumer.go       -package=mocks

package mocks
