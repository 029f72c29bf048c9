package app

import (
	"context"
	"database/sql"
	"errors"

	"smg-portal/internal/certificate"
	"smg-portal/internal/config"
	"smg-portal/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the shared connections of one process.
type Infra struct {
	Config config.Config
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
	Logger *zap.Logger
}

func Connect(cfg config.Config, logger *zap.Logger, withRedis bool) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.MaxConnectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	infra := &Infra{Config: cfg, GormDB: gormDB, SQLDB: sqlDB, Logger: logger}

	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.MaxConnectRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		infra.Redis = rdb
	}
	return infra, nil
}

func (i *Infra) Close() error {
	var errs []error
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.SQLDB != nil {
		errs = append(errs, i.SQLDB.Close())
	}
	return errors.Join(errs...)
}

// CertificateStore returns the GCS store when a bucket is configured and a
// logging no-op store otherwise.
func (i *Infra) CertificateStore(ctx context.Context) (certificate.Store, func() error, error) {
	if i.Config.GCSBucket == "" {
		i.Logger.Warn("GCS_BUCKET not set, certificates are rendered but not stored")
		return certificate.NewNopStore(i.Logger), func() error { return nil }, nil
	}
	store, err := certificate.NewGCSStore(ctx, i.Config.GCSBucket, certificate.ClientOptions(i.Config.GCSCredentialsFile), i.Logger)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}
