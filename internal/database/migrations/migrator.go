package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
)

//go:embed *.sql
var sqlFiles embed.FS

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

var (
	mu         sync.Mutex
	migrations = make(map[string]Migration)
)

// Register adds a new migration to the registry
func Register(id string, up, down func(*gorm.DB) error) {
	mu.Lock()
	defer mu.Unlock()
	migrations[id] = Migration{
		ID:   id,
		Up:   up,
		Down: down,
	}
}

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

// RunMigrations executes all pending migrations
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	mu.Lock()
	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		pending = append(pending, m)
	}
	mu.Unlock()
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })

	var executed []MigrationRecord
	if err := db.Find(&executed).Error; err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	executedMap := make(map[string]bool)
	for _, m := range executed {
		executedMap[m.ID] = true
	}

	for _, migration := range pending {
		if executedMap[migration.ID] {
			continue
		}

		logger.Info("Running migration", "id", migration.ID)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("failed to run migration %s: %w", migration.ID, err)
			}
			if err := tx.Create(&MigrationRecord{ID: migration.ID}).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", migration.ID, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		logger.Info("Completed migration", "id", migration.ID)
	}

	return nil
}

// LoadSQLMigrations registers the SQL files embedded in this package.
func LoadSQLMigrations() error {
	return LoadSQLMigrationsFS(sqlFiles)
}

// LoadSQLMigrationsFS registers every *.sql file at the root of fsys.
func LoadSQLMigrationsFS(fsys fs.FS) error {
	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		id := strings.TrimSuffix(file.Name(), ".sql")

		content, err := fs.ReadFile(fsys, file.Name())
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		stmt := string(content)
		Register(id, func(db *gorm.DB) error {
			return db.Exec(stmt).Error
		}, nil) // No down migration for SQL files
	}

	return nil
}
