package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

// Open connects with the given dialector and migrates every model. Each call returns a new
// handle; callers own it and pass it into the tracker explicitly.
func Open(dialector gorm.Dialector) (*DB, error) {
	logger := common.GetLogger()

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	instance := &DB{Conn: conn}
	if err := instance.Migrate(); err != nil {
		return nil, err
	}

	logger.Info("Database migration completed")

	if dialector.Name() == "sqlite" {
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("db: enable sqlite foreign key support: %w", err)
		}
	}

	return instance, nil
}

func (d *DB) Migrate() error {
	if err := d.Conn.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// UseWAL switches a file-backed sqlite database to write-ahead logging.
func (d *DB) UseWAL() error {
	if err := d.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
		return fmt.Errorf("db: set sqlite journal mode: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Foreign keys are enabled in the DSN as well as by PRAGMA: the pragma is per connection and
// the pool may open more than one.
func UseSqliteDialector(dbPath string) gorm.Dialector {
	if dbPath == "" {
		dbPath = "maintenance.db"
	}
	return sqlite.Open(dbPath + "?_foreign_keys=on")
}

// UseMemorySqliteDialector returns a private shared-cache in-memory database, so every caller
// (and every test) gets an isolated store.
func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()))
}

func UseMysqlDialector(dsn string) gorm.Dialector {
	return mysql.Open(dsn)
}

// OpenFromConfig picks the dialector named by MT_DB_TYPE.
func OpenFromConfig(cfg *common.Config) (*DB, error) {
	switch cfg.DBType {
	case "file":
		instance, err := Open(UseSqliteDialector(cfg.DBPath))
		if err != nil {
			return nil, err
		}
		if err := instance.UseWAL(); err != nil {
			return nil, err
		}
		return instance, nil
	case "memory":
		return Open(UseMemorySqliteDialector())
	case "mysql":
		return Open(UseMysqlDialector(cfg.DBDSN))
	default:
		return nil, fmt.Errorf("db: unknown MT_DB_TYPE: %s", cfg.DBType)
	}
}
