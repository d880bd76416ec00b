package app

import (
	"context"
	"fmt"

	"github.com/allisson/datashare/internal/http"

	accountsHTTP "github.com/allisson/datashare/internal/accounts/http"
	accountsRepository "github.com/allisson/datashare/internal/accounts/repository"
	accountsUseCase "github.com/allisson/datashare/internal/accounts/usecase"
	authHTTP "github.com/allisson/datashare/internal/auth/http"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
	consentUseCase "github.com/allisson/datashare/internal/consent/usecase"
	transactionsHTTP "github.com/allisson/datashare/internal/transactions/http"
	transactionsRepository "github.com/allisson/datashare/internal/transactions/repository"
	transactionsUseCase "github.com/allisson/datashare/internal/transactions/usecase"
)

// AccountRepository returns the account repository for the configured driver.
func (c *Container) AccountRepository() (accountsUseCase.AccountRepository, error) {
	c.accountRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["accountRepo"] = fmt.Errorf("failed to get database for account repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.accountRepo = accountsRepository.NewMySQLAccountRepository(db)
		case "postgres":
			c.accountRepo = accountsRepository.NewPostgreSQLAccountRepository(db)
		default:
			c.initErrors["accountRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["accountRepo"]; exists {
		return nil, storedErr
	}
	return c.accountRepo, nil
}

// TransactionRepository returns the transaction repository for the configured driver.
func (c *Container) TransactionRepository() (transactionsUseCase.TransactionRepository, error) {
	c.transactionRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["transactionRepo"] = fmt.Errorf("failed to get database for transaction repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.transactionRepo = transactionsRepository.NewMySQLTransactionRepository(db)
		case "postgres":
			c.transactionRepo = transactionsRepository.NewPostgreSQLTransactionRepository(db)
		default:
			c.initErrors["transactionRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["transactionRepo"]; exists {
		return nil, storedErr
	}
	return c.transactionRepo, nil
}

// ConsentGate returns the consent gate applied to account-scoped requests.
func (c *Container) ConsentGate(ctx context.Context) (consentUseCase.Gate, error) {
	c.consentGateInit.Do(func() {
		codec, err := c.Codec(ctx)
		if err != nil {
			c.initErrors["consentGate"] = err
			return
		}

		accountRepo, err := c.AccountRepository()
		if err != nil {
			c.initErrors["consentGate"] = err
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["consentGate"] = err
			return
		}

		gate := consentUseCase.NewConsentGate(codec, accountRepo, c.Logger())
		c.consentGate = consentUseCase.NewGateWithMetrics(gate, businessMetrics)
	})
	if storedErr, exists := c.initErrors["consentGate"]; exists {
		return nil, storedErr
	}
	return c.consentGate, nil
}

// AccountUseCase returns the account use case.
func (c *Container) AccountUseCase(ctx context.Context) (accountsUseCase.UseCase, error) {
	c.accountUseCaseInit.Do(func() {
		codec, err := c.Codec(ctx)
		if err != nil {
			c.initErrors["accountUseCase"] = err
			return
		}

		accountRepo, err := c.AccountRepository()
		if err != nil {
			c.initErrors["accountUseCase"] = err
			return
		}

		gate, err := c.ConsentGate(ctx)
		if err != nil {
			c.initErrors["accountUseCase"] = err
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["accountUseCase"] = err
			return
		}

		useCase := accountsUseCase.NewAccountUseCase(accountRepo, gate, codec, c.Logger())
		c.accountUseCase = accountsUseCase.NewAccountUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// TransactionUseCase returns the transaction use case.
func (c *Container) TransactionUseCase(ctx context.Context) (transactionsUseCase.UseCase, error) {
	c.transactionUseCaseInit.Do(func() {
		codec, err := c.Codec(ctx)
		if err != nil {
			c.initErrors["transactionUseCase"] = err
			return
		}

		transactionRepo, err := c.TransactionRepository()
		if err != nil {
			c.initErrors["transactionUseCase"] = err
			return
		}

		gate, err := c.ConsentGate(ctx)
		if err != nil {
			c.initErrors["transactionUseCase"] = err
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["transactionUseCase"] = err
			return
		}

		useCase := transactionsUseCase.NewTransactionUseCase(transactionRepo, gate, codec, c.Logger())
		c.transactionUseCase = transactionsUseCase.NewTransactionUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["transactionUseCase"]; exists {
		return nil, storedErr
	}
	return c.transactionUseCase, nil
}

// SubjectUseCase returns the subject use case.
func (c *Container) SubjectUseCase(ctx context.Context) (authUseCase.SubjectUseCase, error) {
	c.subjectUseCaseInit.Do(func() {
		codec, err := c.Codec(ctx)
		if err != nil {
			c.initErrors["subjectUseCase"] = err
			return
		}
		c.subjectUseCase = authUseCase.NewSubjectUseCase(codec)
	})
	if storedErr, exists := c.initErrors["subjectUseCase"]; exists {
		return nil, storedErr
	}
	return c.subjectUseCase, nil
}

// HTTPServer returns the HTTP server with all routes configured. The readyCtx
// drives the readiness endpoint: once it is cancelled the server reports
// itself as draining.
func (c *Container) HTTPServer(ctx context.Context, readyCtx context.Context) (*http.Server, error) {
	c.httpServerInit.Do(func() {
		accountUseCase, err := c.AccountUseCase(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}

		transactionUseCase, err := c.TransactionUseCase(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}

		subjectUseCase, err := c.SubjectUseCase(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}

		metricsProvider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}

		logger := c.Logger()
		handlers := http.Handlers{
			Account:     accountsHTTP.NewAccountHandler(accountUseCase, c.config, logger),
			Transaction: transactionsHTTP.NewTransactionHandler(transactionUseCase, c.config, logger),
			Subject:     authHTTP.NewSubjectHandler(subjectUseCase, logger),
		}

		if metricsProvider != nil {
			c.httpServer = http.NewServer(c.config, logger, handlers, metricsProvider.MeterProvider(), readyCtx)
		} else {
			c.httpServer = http.NewServer(c.config, logger, handlers, nil, readyCtx)
		}
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	c.metricsServerInit.Do(func() {
		metricsProvider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), metricsProvider)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}
