package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cabinet-service/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Medecin{},
		&model.Patient{},
		&model.Secretaire{},
		&model.Admin{},
		&model.RendezVous{},
		&model.Notification{},
		&model.DossierMedical{},
		&model.Consultation{},
		&model.Traitement{},
		&model.PersonnelMedical{},
		&model.RessourceMedicale{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: model.RoleAdmin, Description: "Administrateur du cabinet"},
		{Name: model.RoleMedecin, Description: "Médecin"},
		{Name: model.RoleSecretaire, Description: "Secrétaire médicale"},
		{Name: model.RolePatient, Description: "Patient"},
		{Name: model.RoleUser, Description: "Compte sans rôle attribué"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var adminRole model.Role
	if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@cabinet.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Nom:          "Admin",
		Prenom:       "Cabinet",
		Email:        "admin@cabinet.local",
		PasswordHash: string(hashedPasswordBytes),
		RoleID:       &adminRole.ID,
		EstActif:     true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	if err := db.Create(&model.Admin{UserID: adminUser.ID}).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully")
	log.Println("   Email: admin@cabinet.local")
	log.Println("   Password: admin123")

	return nil
}
