package database

import (
	"errors"
	"log"

	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/utils"

	"gorm.io/gorm"
)

// rolePermissions is the static grant table. A (role, resource, action)
// triple absent from this map is denied; there is no wildcard.
var rolePermissions = map[models.RoleName][]models.Permission{
	models.RoleAdmin: {
		{ResourceType: models.ResourceFolder, Action: models.ActionRead},
		{ResourceType: models.ResourceFolder, Action: models.ActionWrite},
		{ResourceType: models.ResourceFolder, Action: models.ActionDelete},
		{ResourceType: models.ResourceDocument, Action: models.ActionRead},
		{ResourceType: models.ResourceDocument, Action: models.ActionWrite},
		{ResourceType: models.ResourceDocument, Action: models.ActionDelete},
		{ResourceType: models.ResourceUser, Action: models.ActionRead},
		{ResourceType: models.ResourceUser, Action: models.ActionWrite},
		{ResourceType: models.ResourceUser, Action: models.ActionDelete},
		{ResourceType: models.ResourceDepartment, Action: models.ActionRead},
		{ResourceType: models.ResourceDepartment, Action: models.ActionWrite},
		{ResourceType: models.ResourceDepartment, Action: models.ActionDelete},
		{ResourceType: models.ResourceAudit, Action: models.ActionRead},
	},
	models.RoleManager: {
		{ResourceType: models.ResourceFolder, Action: models.ActionRead},
		{ResourceType: models.ResourceFolder, Action: models.ActionWrite},
		{ResourceType: models.ResourceFolder, Action: models.ActionDelete},
		{ResourceType: models.ResourceDocument, Action: models.ActionRead},
		{ResourceType: models.ResourceDocument, Action: models.ActionWrite},
		{ResourceType: models.ResourceDocument, Action: models.ActionDelete},
		{ResourceType: models.ResourceUser, Action: models.ActionRead},
		{ResourceType: models.ResourceDepartment, Action: models.ActionRead},
	},
	models.RoleUser: {
		{ResourceType: models.ResourceFolder, Action: models.ActionRead},
		{ResourceType: models.ResourceDocument, Action: models.ActionRead},
		{ResourceType: models.ResourceDocument, Action: models.ActionWrite},
		{ResourceType: models.ResourceDepartment, Action: models.ActionRead},
	},
}

// SeedDefaults makes sure the three roles, their permission rows and an
// initial admin account exist. It is idempotent and safe on every start.
func SeedDefaults(adminEmail, adminPassword string) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		roleIDs := map[models.RoleName]uint{}

		for _, name := range []models.RoleName{models.RoleAdmin, models.RoleManager, models.RoleUser} {
			var role models.Role
			err := tx.Where("name = ?", name).First(&role).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				role = models.Role{Name: name}
				if err := tx.Create(&role).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
			roleIDs[name] = role.ID
		}

		for name, perms := range rolePermissions {
			for _, perm := range perms {
				perm.RoleID = roleIDs[name]
				var count int64
				err := tx.Model(&models.Permission{}).
					Where("role_id = ? AND resource_type = ? AND action = ?", perm.RoleID, perm.ResourceType, perm.Action).
					Count(&count).Error
				if err != nil {
					return err
				}
				if count == 0 {
					if err := tx.Create(&perm).Error; err != nil {
						return err
					}
				}
			}
		}

		if adminEmail == "" {
			return nil
		}

		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := utils.HashPassword(adminPassword)
		if err != nil {
			return err
		}
		admin := models.User{
			Email:        adminEmail,
			PasswordHash: hash,
			FirstName:    "System",
			LastName:     "Administrator",
			RoleID:       roleIDs[models.RoleAdmin],
			IsActive:     true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("seeded initial admin account %s", adminEmail)
		return nil
	})
}
