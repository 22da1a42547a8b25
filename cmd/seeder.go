package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample accounts for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"certificates", "attentions", "client_vehicles", "clients", "workers", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "admin123"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		accounts := []struct {
			Name  string
			Email string
			Role  string
		}{
			{"Administrador", "admin@taller.cl", "admin"},
			{"Operador Turno", "operador@taller.cl", "operator"},
			{"Pedro Mecanico", "pedro@taller.cl", "worker"},
			{"Maria Cliente", "maria@taller.cl", "client"},
		}

		for _, a := range accounts {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", a.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", a.Email)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (name, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, now())",
				a.Name, a.Email, string(hash), a.Role).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", a.Email, err)
			}
			fmt.Printf("Seeded %s user: %s\n", a.Role, a.Email)
		}

		fmt.Println("Seed completed. All accounts use password:", password)
	},
}
