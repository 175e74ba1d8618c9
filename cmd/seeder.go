package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with profiles, menus, offices, schedules and a super admin user for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGormDB(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			tables := []string{
				"access_attempts", "temporary_schedules", "personal_schedules",
				"office_schedules", "user_permissions", "profile_permissions",
				"options", "submenus", "menus", "users", "offices", "profiles",
			}
			for _, t := range tables {
				if err := db.Exec("DELETE FROM " + t).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", t, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedProfiles(db)
		seedOffices(db)
		seedMenuTree(db)
		seedUsers(db, cfg.Security.BCryptCost)
		seedAvailability(db)
		seedSchedules(db)

		fmt.Println("Seeding complete")
	},
}

func seedProfiles(db *gorm.DB) {
	profiles := []struct {
		ID   int64
		Name string
	}{
		{1, "Super Administrador"},
		{2, "Administrador de Oficina"},
		{3, "Operador"},
	}
	for _, p := range profiles {
		var exists int
		if err := db.Raw("SELECT 1 FROM profiles WHERE id = ?", p.ID).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO profiles (id, name, active, created_at) VALUES (?, ?, true, now())", p.ID, p.Name).Error; err != nil {
			log.Fatalf("failed to insert profile %s: %v", p.Name, err)
		}
		fmt.Println("Seeded profile:", p.Name)
	}
}

func seedOffices(db *gorm.DB) {
	offices := []struct {
		ID   int64
		Name string
	}{
		{1, "Matriz"},
		{2, "Agencia Norte"},
	}
	for _, o := range offices {
		var exists int
		if err := db.Raw("SELECT 1 FROM offices WHERE id = ?", o.ID).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO offices (id, name, institution_id, active) VALUES (?, ?, 1, true)", o.ID, o.Name).Error; err != nil {
			log.Fatalf("failed to insert office %s: %v", o.Name, err)
		}
		fmt.Println("Seeded office:", o.Name)
	}
}

func seedMenuTree(db *gorm.DB) {
	menus := []struct {
		ID   int64
		Name string
		Icon string
	}{
		{1, "Administración", "settings"},
		{2, "Socios", "people"},
		{3, "Reportes", "bar_chart"},
	}
	for _, m := range menus {
		var exists int
		if err := db.Raw("SELECT 1 FROM menus WHERE men_id = ?", m.ID).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO menus (men_id, men_nombre, men_icono, men_activo) VALUES (?, ?, ?, true)", m.ID, m.Name, m.Icon).Error; err != nil {
			log.Fatalf("failed to insert menu %s: %v", m.Name, err)
		}
	}

	submenus := []struct {
		ID   int64
		Name string
	}{
		{1, "Usuarios"},
		{2, "Permisos"},
		{3, "Horarios"},
	}
	for _, s := range submenus {
		var exists int
		if err := db.Raw("SELECT 1 FROM submenus WHERE sub_id = ?", s.ID).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO submenus (sub_id, sub_nombre, sub_activo) VALUES (?, ?, true)", s.ID, s.Name).Error; err != nil {
			log.Fatalf("failed to insert submenu %s: %v", s.Name, err)
		}
	}

	options := []struct {
		ID   int64
		Name string
	}{
		{1, "Crear"},
		{2, "Editar"},
		{3, "Eliminar"},
	}
	for _, o := range options {
		var exists int
		if err := db.Raw("SELECT 1 FROM options WHERE opc_id = ?", o.ID).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO options (opc_id, opc_nombre, opc_activo) VALUES (?, ?, true)", o.ID, o.Name).Error; err != nil {
			log.Fatalf("failed to insert option %s: %v", o.Name, err)
		}
	}
}

func seedUsers(db *gorm.DB, bcryptCost int) {
	password := "password"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)

	users := []struct {
		Email     string
		Name      string
		ProfileID int64
		OfficeID  *int64
	}{
		{"admin@solstic.fin.ec", "Super Admin", 1, nil},
		{"operador@solstic.fin.ec", "Operador Matriz", 3, ptrInt64(1)},
	}
	for _, u := range users {
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
			fmt.Println("user already exists:", u.Email)
			continue
		}
		if err := db.Exec(
			"INSERT INTO users (email, name, password_hash, profile_id, office_id, disabled, state_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, false, 1, now(), now())",
			u.Email, u.Name, string(hash), u.ProfileID, u.OfficeID,
		).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", u.Email, err)
		}
		fmt.Println("Seeded user:", u.Email)
	}
}

// seedAvailability grants the operador profile the Socios menu with the
// Usuarios submenu and its Crear/Editar options, plus the Reportes menu.
func seedAvailability(db *gorm.DB) {
	rows := []struct {
		ProfileID int64
		MenID     int64
		SubID     *int64
		OpcID     *int64
	}{
		{3, 2, nil, nil},
		{3, 2, ptrInt64(1), nil},
		{3, 2, ptrInt64(1), ptrInt64(1)},
		{3, 2, ptrInt64(1), ptrInt64(2)},
		{3, 3, nil, nil},
	}
	for _, r := range rows {
		var exists int
		err := db.Raw(
			"SELECT 1 FROM profile_permissions WHERE profile_id = ? AND men_id = ? AND sub_id IS NOT DISTINCT FROM ? AND opc_id IS NOT DISTINCT FROM ?",
			r.ProfileID, r.MenID, r.SubID, r.OpcID,
		).Row().Scan(&exists)
		if err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO profile_permissions (profile_id, men_id, sub_id, opc_id) VALUES (?, ?, ?, ?)",
			r.ProfileID, r.MenID, r.SubID, r.OpcID,
		).Error; err != nil {
			log.Fatalf("failed to insert profile permission: %v", err)
		}
	}
	fmt.Println("Seeded operador profile availability")
}

// seedSchedules gives every office a Monday-Friday 08:00-17:00 window and a
// Saturday half day.
func seedSchedules(db *gorm.DB) {
	for officeID := int64(1); officeID <= 2; officeID++ {
		for weekday := 1; weekday <= 6; weekday++ {
			end := "17:00"
			if weekday == 6 {
				end = "12:30"
			}
			var exists int
			if err := db.Raw("SELECT 1 FROM office_schedules WHERE office_id = ? AND weekday = ?", officeID, weekday).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO office_schedules (office_id, weekday, start_time, end_time, enabled) VALUES (?, ?, ?, ?, true)",
				officeID, weekday, "08:00", end,
			).Error; err != nil {
				log.Fatalf("failed to insert office schedule: %v", err)
			}
		}
	}
	fmt.Println("Seeded office schedules")
}

func ptrInt64(v int64) *int64 { return &v }
