package app

import (
	"context"
	"fmt"
	"sync"

	otelmetric "go.opentelemetry.io/otel/metric"

	analyticsHTTP "github.com/tehnczon/projectecho/internal/analytics/http"
	analyticsRepository "github.com/tehnczon/projectecho/internal/analytics/repository"
	analyticsUsecase "github.com/tehnczon/projectecho/internal/analytics/usecase"
	"github.com/tehnczon/projectecho/internal/http"
	identityHTTP "github.com/tehnczon/projectecho/internal/identity/http"
	identityRepository "github.com/tehnczon/projectecho/internal/identity/repository"
	identityUsecase "github.com/tehnczon/projectecho/internal/identity/usecase"
	outboxRepository "github.com/tehnczon/projectecho/internal/outbox/repository"
	outboxUsecase "github.com/tehnczon/projectecho/internal/outbox/usecase"
	surveyHTTP "github.com/tehnczon/projectecho/internal/survey/http"
	surveyRepository "github.com/tehnczon/projectecho/internal/survey/repository"
	surveyUsecase "github.com/tehnczon/projectecho/internal/survey/usecase"
)

// domainComponents groups the lazily built repositories and use cases.
type domainComponents struct {
	identityRepo identityUsecase.IdentityRepository
	surveyRepo   surveyUsecase.SurveyRepository
	outboxRepo   outboxUsecase.OutboxEventRepository
	summaryRepo  analyticsUsecase.SummaryRepository

	identityUseCase  identityUsecase.UseCase
	surveyUseCase    surveyUsecase.UseCase
	analyticsUseCase analyticsUsecase.UseCase
	outboxUseCase    outboxUsecase.UseCase

	identityRepoInit     sync.Once
	surveyRepoInit       sync.Once
	outboxRepoInit       sync.Once
	summaryRepoInit      sync.Once
	identityUseCaseInit  sync.Once
	surveyUseCaseInit    sync.Once
	analyticsUseCaseInit sync.Once
	outboxUseCaseInit    sync.Once
}

// IdentityRepository returns the encrypted identity repository instance.
func (c *Container) IdentityRepository() (identityUsecase.IdentityRepository, error) {
	c.domain.identityRepoInit.Do(func() {
		repo, err := c.initIdentityRepository()
		if err != nil {
			c.initErrors["identityRepo"] = err
			return
		}
		c.domain.identityRepo = repo
	})
	if storedErr, exists := c.initErrors["identityRepo"]; exists {
		return nil, storedErr
	}
	return c.domain.identityRepo, nil
}

// SurveyRepository returns the raw survey record repository instance.
func (c *Container) SurveyRepository() (surveyUsecase.SurveyRepository, error) {
	c.domain.surveyRepoInit.Do(func() {
		repo, err := c.initSurveyRepository()
		if err != nil {
			c.initErrors["surveyRepo"] = err
			return
		}
		c.domain.surveyRepo = repo
	})
	if storedErr, exists := c.initErrors["surveyRepo"]; exists {
		return nil, storedErr
	}
	return c.domain.surveyRepo, nil
}

// OutboxRepository returns the outbox event repository instance.
func (c *Container) OutboxRepository() (outboxUsecase.OutboxEventRepository, error) {
	c.domain.outboxRepoInit.Do(func() {
		repo, err := c.initOutboxRepository()
		if err != nil {
			c.initErrors["outboxRepo"] = err
			return
		}
		c.domain.outboxRepo = repo
	})
	if storedErr, exists := c.initErrors["outboxRepo"]; exists {
		return nil, storedErr
	}
	return c.domain.outboxRepo, nil
}

// SummaryRepository returns the analytics summary repository instance.
func (c *Container) SummaryRepository() (analyticsUsecase.SummaryRepository, error) {
	c.domain.summaryRepoInit.Do(func() {
		repo, err := c.initSummaryRepository()
		if err != nil {
			c.initErrors["summaryRepo"] = err
			return
		}
		c.domain.summaryRepo = repo
	})
	if storedErr, exists := c.initErrors["summaryRepo"]; exists {
		return nil, storedErr
	}
	return c.domain.summaryRepo, nil
}

// IdentityUseCase returns the identity use case instance.
func (c *Container) IdentityUseCase(ctx context.Context) (identityUsecase.UseCase, error) {
	c.domain.identityUseCaseInit.Do(func() {
		useCase, err := c.initIdentityUseCase(ctx)
		if err != nil {
			c.initErrors["identityUseCase"] = err
			return
		}
		c.domain.identityUseCase = useCase
	})
	if storedErr, exists := c.initErrors["identityUseCase"]; exists {
		return nil, storedErr
	}
	return c.domain.identityUseCase, nil
}

// SurveyUseCase returns the survey use case instance.
func (c *Container) SurveyUseCase() (surveyUsecase.UseCase, error) {
	c.domain.surveyUseCaseInit.Do(func() {
		useCase, err := c.initSurveyUseCase()
		if err != nil {
			c.initErrors["surveyUseCase"] = err
			return
		}
		c.domain.surveyUseCase = useCase
	})
	if storedErr, exists := c.initErrors["surveyUseCase"]; exists {
		return nil, storedErr
	}
	return c.domain.surveyUseCase, nil
}

// AnalyticsUseCase returns the analytics use case instance.
func (c *Container) AnalyticsUseCase() (analyticsUsecase.UseCase, error) {
	c.domain.analyticsUseCaseInit.Do(func() {
		useCase, err := c.initAnalyticsUseCase()
		if err != nil {
			c.initErrors["analyticsUseCase"] = err
			return
		}
		c.domain.analyticsUseCase = useCase
	})
	if storedErr, exists := c.initErrors["analyticsUseCase"]; exists {
		return nil, storedErr
	}
	return c.domain.analyticsUseCase, nil
}

// OutboxUseCase returns the outbox processing use case instance.
func (c *Container) OutboxUseCase() (outboxUsecase.UseCase, error) {
	c.domain.outboxUseCaseInit.Do(func() {
		useCase, err := c.initOutboxUseCase()
		if err != nil {
			c.initErrors["outboxUseCase"] = err
			return
		}
		c.domain.outboxUseCase = useCase
	})
	if storedErr, exists := c.initErrors["outboxUseCase"]; exists {
		return nil, storedErr
	}
	return c.domain.outboxUseCase, nil
}

// initIdentityRepository creates the encrypted identity repository instance.
func (c *Container) initIdentityRepository() (identityUsecase.IdentityRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for identity repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLIdentityRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLIdentityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSurveyRepository creates the raw survey record repository instance.
func (c *Container) initSurveyRepository() (surveyUsecase.SurveyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for survey repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return surveyRepository.NewMySQLSurveyRepository(db), nil
	case "postgres":
		return surveyRepository.NewPostgreSQLSurveyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initOutboxRepository creates the outbox event repository instance.
func (c *Container) initOutboxRepository() (outboxUsecase.OutboxEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return outboxRepository.NewMySQLOutboxEventRepository(db), nil
	case "postgres":
		return outboxRepository.NewPostgreSQLOutboxEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSummaryRepository creates the analytics summary repository instance.
func (c *Container) initSummaryRepository() (analyticsUsecase.SummaryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for summary repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return analyticsRepository.NewMySQLSummaryRepository(db), nil
	case "postgres":
		return analyticsRepository.NewPostgreSQLSummaryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initIdentityUseCase creates the identity use case with all its dependencies.
func (c *Container) initIdentityUseCase(ctx context.Context) (identityUsecase.UseCase, error) {
	identityRepo, err := c.IdentityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity repository for identity use case: %w", err)
	}

	gateway, err := c.KMSGateway(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get kms gateway for identity use case: %w", err)
	}

	indexer, err := c.BlindIndexer()
	if err != nil {
		return nil, fmt.Errorf("failed to get blind indexer for identity use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for identity use case: %w", err)
	}

	useCase := identityUsecase.NewIdentityUseCase(identityRepo, gateway, indexer, c.Logger())
	return identityUsecase.NewIdentityUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initSurveyUseCase creates the survey use case with all its dependencies.
func (c *Container) initSurveyUseCase() (surveyUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for survey use case: %w", err)
	}

	surveyRepo, err := c.SurveyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get survey repository for survey use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for survey use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for survey use case: %w", err)
	}

	useCase := surveyUsecase.NewSurveyUseCase(txManager, surveyRepo, outboxRepo)
	return surveyUsecase.NewSurveyUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initAnalyticsUseCase creates the analytics use case with all its dependencies.
func (c *Container) initAnalyticsUseCase() (analyticsUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for analytics use case: %w", err)
	}

	summaryRepo, err := c.SummaryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get summary repository for analytics use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for analytics use case: %w", err)
	}

	useCase := analyticsUsecase.NewAnalyticsUseCase(txManager, summaryRepo, c.Logger())
	return analyticsUsecase.NewAnalyticsUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initOutboxUseCase creates the outbox use case with the aggregation event processor.
func (c *Container) initOutboxUseCase() (outboxUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	analytics, err := c.AnalyticsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get analytics use case for outbox use case: %w", err)
	}

	surveyRepo, err := c.SurveyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get survey repository for outbox use case: %w", err)
	}

	processor := analyticsUsecase.NewRecordEventProcessor(analytics, surveyRepo, c.Logger())

	return outboxUsecase.NewOutboxUseCase(
		outboxUsecase.Config{
			Interval:   c.config.WorkerInterval,
			BatchSize:  c.config.WorkerBatchSize,
			MaxRetries: c.config.WorkerMaxRetries,
		},
		txManager,
		outboxRepo,
		processor,
		c.Logger(),
	), nil
}

// initAPIServer creates the API server with all handlers wired.
func (c *Container) initAPIServer(ctx context.Context) (*http.Server, error) {
	identityUseCase, err := c.IdentityUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get identity use case for api server: %w", err)
	}

	surveyUseCase, err := c.SurveyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get survey use case for api server: %w", err)
	}

	analyticsUseCase, err := c.AnalyticsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get analytics use case for api server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for api server: %w", err)
	}

	logger := c.Logger()

	serverConfig := http.ServerConfig{
		Host:                    c.config.ServerHost,
		Port:                    c.config.ServerPort,
		CORSEnabled:             c.config.CORSEnabled,
		CORSAllowOrigins:        c.config.CORSAllowOrigins,
		RateLimitEnabled:        c.config.RateLimitEnabled,
		RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
		RateLimitBurst:          c.config.RateLimitBurst,
		MetricsNamespace:        c.config.MetricsNamespace,
	}

	var meterProvider otelmetric.MeterProvider
	if provider != nil {
		meterProvider = provider.MeterProvider()
	}

	return http.NewServer(
		serverConfig,
		logger,
		identityHTTP.NewIdentityHandler(identityUseCase, logger),
		surveyHTTP.NewRecordHandler(surveyUseCase, logger),
		analyticsHTTP.NewSummaryHandler(analyticsUseCase, logger),
		meterProvider,
	), nil
}
