package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/monocle-dev/taskmanager/internal/config"
	"github.com/monocle-dev/taskmanager/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// database/sql driver behind the postgres dialector
	_ "github.com/lib/pq"
)

// ConnectDatabase opens a connection for the configured driver. Unique and
// foreign key violations are translated into gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated. Misses are not logged; they surface as 404s.
func ConnectDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case config.DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        dsn,
		})
	case config.DriverMySQL:
		dialector = mysql.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(dsn))
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(log.New(os.Stdout, "\r\n", log.LstdFlags)),
	})

	if err != nil {
		return nil, err
	}

	return db, nil
}

func MigrateDatabase(db *gorm.DB) error {
	for _, model := range models.AllModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

func newLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// sqlite leaves foreign keys off unless asked per connection.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}
